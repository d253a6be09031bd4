package transport

import (
	"context"
	"log"

	"alphareg/internal/register"
	"alphareg/internal/round"
	"alphareg/internal/wire"
)

// AcceptorService serves the acceptor role of the local register to remote
// proposers, plus the Ping probe for failure detection.
type AcceptorService struct {
	reg    *register.Alpha[[]byte]
	nodeID round.ID
}

// NewAcceptorService wraps the node's register.
func NewAcceptorService(reg *register.Alpha[[]byte], nodeID round.ID) *AcceptorService {
	return &AcceptorService{reg: reg, nodeID: nodeID}
}

// Read handles a promise request from a remote proposer.
func (s *AcceptorService) Read(ctx context.Context, req *wire.ReadRequest) (*wire.ReadReply, error) {
	r := roundFromWire(req.Round)
	log.Printf("[%d] Read: round=%s", s.nodeID, r)

	resp := s.reg.Read(r)
	return &wire.ReadReply{
		Round: roundToWire(resp.Round),
		State: stateToWire(resp.State),
	}, nil
}

// Write handles an accept request from a remote proposer.
func (s *AcceptorService) Write(ctx context.Context, req *wire.WriteRequest) (*wire.WriteReply, error) {
	v := valueFromWire(req.Value)
	log.Printf("[%d] Write: round=%s", s.nodeID, v.LastRoundWithWrite)

	resp := s.reg.Write(v)
	return &wire.WriteReply{
		Round:            roundToWire(resp.Round),
		LastRoundEntered: roundToWire(resp.LastRoundEntered),
	}, nil
}

// Ping answers a failure-detector probe.
func (s *AcceptorService) Ping(ctx context.Context, req *wire.PingRequest) (*wire.PingReply, error) {
	return &wire.PingReply{}, nil
}

var _ wire.AcceptorServer = (*AcceptorService)(nil)
