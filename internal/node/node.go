package node

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"

	"google.golang.org/grpc"

	"alphareg/internal/config"
	"alphareg/internal/detector"
	"alphareg/internal/proposer"
	"alphareg/internal/register"
	"alphareg/internal/transport"
	"alphareg/internal/wire"
)

// Node is a single participating process: one register serving the acceptor
// role to the cluster, one proposer driving rounds for local clients, and a
// failure detector electing the round leader.
type Node struct {
	cfg     *config.Config
	reg     *register.Alpha[[]byte]
	prop    *proposer.Proposer[[]byte]
	det     *detector.Detector
	clients *transport.ClientManager

	grpcServer *grpc.Server

	// One in-flight proposal at a time; concurrency lives between
	// processes, not within one.
	proposeMu sync.Mutex
}

// New builds a node from a validated configuration.
func New(cfg *config.Config) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	clients := transport.NewClientManager()
	reg := register.New[[]byte]()
	peers := transport.NewPeerSet(cfg.Addrs(), cfg.Majority(), clients)
	det := detector.New(cfg.NodeID, cfg.PeerMap(), cfg.ProbeInterval, cfg.SuspectTimeout)

	return &Node{
		cfg:     cfg,
		reg:     reg,
		prop:    proposer.New(cfg.NodeID, reg, peers, det),
		det:     det,
		clients: clients,
	}, nil
}

// Start begins serving and blocks until the server stops.
func (n *Node) Start() error {
	lis, err := net.Listen("tcp", n.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", n.cfg.ListenAddr, err)
	}

	n.grpcServer = grpc.NewServer()
	wire.RegisterAcceptorServer(n.grpcServer, transport.NewAcceptorService(n.reg, n.cfg.NodeID))
	wire.RegisterRegisterServer(n.grpcServer, &Service{node: n})

	n.det.Start(n.probe)

	log.Printf("[%d] Starting node on %s", n.cfg.NodeID, n.cfg.ListenAddr)

	if err := n.grpcServer.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Stop gracefully stops the node.
func (n *Node) Stop() {
	n.det.Stop()
	if n.grpcServer != nil {
		log.Printf("[%d] Stopping node", n.cfg.NodeID)
		n.grpcServer.GracefulStop()
	}
	n.clients.Close()
}

// Propose blocks until the cluster decides a value and returns it.
func (n *Node) Propose(ctx context.Context, value []byte) ([]byte, error) {
	n.proposeMu.Lock()
	defer n.proposeMu.Unlock()

	log.Printf("[%d] Propose: %d bytes", n.cfg.NodeID, len(value))
	decided, err := n.prop.Propose(ctx, value)
	if err != nil {
		return nil, err
	}
	log.Printf("[%d] Decided: %d bytes", n.cfg.NodeID, len(decided))
	return decided, nil
}

// Snapshot returns the local register state.
func (n *Node) Snapshot() register.State[[]byte] {
	return n.reg.Snapshot()
}

// probe is the detector's liveness check: a Ping on the acceptor service.
func (n *Node) probe(ctx context.Context, addr string) error {
	client, err := n.clients.Acceptor(addr)
	if err != nil {
		return err
	}
	_, err = client.Ping(ctx, &wire.PingRequest{From: uint64(n.cfg.NodeID)})
	return err
}
