package node

import (
	"context"

	"alphareg/internal/transport"
	"alphareg/internal/wire"
)

// Service implements the public Register gRPC service.
type Service struct {
	node *Node
}

// Propose submits a candidate value and blocks until the cluster decides.
// The reply carries the decided value, which is the submitted one only if
// no earlier proposal already settled the register.
func (s *Service) Propose(ctx context.Context, req *wire.ProposeRequest) (*wire.ProposeReply, error) {
	decided, err := s.node.Propose(ctx, req.Value)
	if err != nil {
		return nil, err
	}
	return &wire.ProposeReply{Value: decided}, nil
}

// Get returns the local register snapshot.
func (s *Service) Get(ctx context.Context, req *wire.GetRequest) (*wire.GetReply, error) {
	return &wire.GetReply{State: transport.StateToWire(s.node.Snapshot())}, nil
}

var _ wire.RegisterServer = (*Service)(nil)
