package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"alphareg/internal/wire"
)

const dialTimeout = 5 * time.Second

// ClientManager caches gRPC connections to peer nodes by address.
type ClientManager struct {
	mu    sync.RWMutex
	conns map[string]*grpc.ClientConn
}

// NewClientManager creates an empty client manager.
func NewClientManager() *ClientManager {
	return &ClientManager{
		conns: make(map[string]*grpc.ClientConn),
	}
}

// Acceptor returns an acceptor client for the given address, dialing if no
// cached connection exists.
func (cm *ClientManager) Acceptor(addr string) (wire.AcceptorClient, error) {
	conn, err := cm.conn(addr)
	if err != nil {
		return nil, err
	}
	return wire.NewAcceptorClient(conn), nil
}

// Register returns a public-service client for the given address.
func (cm *ClientManager) Register(addr string) (wire.RegisterClient, error) {
	conn, err := cm.conn(addr)
	if err != nil {
		return nil, err
	}
	return wire.NewRegisterClient(conn), nil
}

func (cm *ClientManager) conn(addr string) (*grpc.ClientConn, error) {
	cm.mu.RLock()
	conn, exists := cm.conns[addr]
	cm.mu.RUnlock()

	if exists {
		return conn, nil
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	// Double-check after acquiring the write lock
	if conn, exists := cm.conns[addr]; exists {
		return conn, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	conn, err := grpc.DialContext(ctx, addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}

	cm.conns[addr] = conn
	return conn, nil
}

// Close closes all cached connections.
func (cm *ClientManager) Close() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for addr, conn := range cm.conns {
		conn.Close()
		delete(cm.conns, addr)
	}
}
