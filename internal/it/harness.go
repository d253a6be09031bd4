package it

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"alphareg/internal/wire"
)

// Cluster is a test harness running real node processes.
type Cluster struct {
	nodes      []*Node
	logDir     string
	binaryPath string
	mu         sync.Mutex
}

// Node is one process in the test cluster.
type Node struct {
	ID      uint64
	Addr    string
	cmd     *exec.Cmd
	logFile *os.File
	conn    *grpc.ClientConn
	client  wire.RegisterClient
}

// Client returns the node's public-service client.
func (n *Node) Client() wire.RegisterClient {
	return n.client
}

// NewCluster creates a harness that runs the given node binary.
func NewCluster(binaryPath string) (*Cluster, error) {
	logDir := filepath.Join(".local", "it-logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &Cluster{
		logDir:     logDir,
		binaryPath: binaryPath,
	}, nil
}

// StartCluster starts n nodes with ids 1..n listening on consecutive ports.
// Every node receives the full static peer list.
func (c *Cluster) StartCluster(ctx context.Context, n, basePort int) error {
	peerStr := ""
	for id := 1; id <= n; id++ {
		if id > 1 {
			peerStr += ","
		}
		peerStr += fmt.Sprintf("%d=127.0.0.1:%d", id, basePort+id-1)
	}

	for id := 1; id <= n; id++ {
		if err := c.startNode(ctx, uint64(id), basePort+id-1, peerStr); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cluster) startNode(ctx context.Context, id uint64, port int, peerStr string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	logPath := filepath.Join(c.logDir, fmt.Sprintf("n%d.log", id))
	logFile, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.binaryPath,
		"--node-id", fmt.Sprintf("%d", id),
		"--listen", addr,
		"--peers", peerStr,
		"--probe-interval", "100ms",
		"--suspect-timeout", "500ms",
	)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		logFile.Close()
		return fmt.Errorf("failed to start node %d: %w", id, err)
	}

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(dialCtx, addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	if err != nil {
		cmd.Process.Kill()
		logFile.Close()
		return fmt.Errorf("failed to dial node %d: %w", id, err)
	}

	c.nodes = append(c.nodes, &Node{
		ID:      id,
		Addr:    addr,
		cmd:     cmd,
		logFile: logFile,
		conn:    conn,
		client:  wire.NewRegisterClient(conn),
	})
	return nil
}

// GetNode returns the node with the given id, or nil.
func (c *Cluster) GetNode(id uint64) *Node {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Nodes returns all running nodes.
func (c *Cluster) Nodes() []*Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Node(nil), c.nodes...)
}

// KillNode forcibly terminates one node, simulating a crash.
func (c *Cluster) KillNode(id uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.nodes {
		if n.ID == id {
			return n.cmd.Process.Kill()
		}
	}
	return fmt.Errorf("no node %d", id)
}

// Stop tears the whole cluster down.
func (c *Cluster) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.nodes {
		if n.conn != nil {
			n.conn.Close()
		}
		if n.cmd != nil && n.cmd.Process != nil {
			n.cmd.Process.Kill()
			n.cmd.Wait()
		}
		if n.logFile != nil {
			n.logFile.Close()
		}
	}
	c.nodes = nil
}
