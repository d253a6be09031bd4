package transport

import (
	"context"
	"time"

	"alphareg/internal/quorum"
	"alphareg/internal/register"
	"alphareg/internal/round"
	"alphareg/internal/wire"
)

// DefaultPerPeerTimeout bounds each individual peer RPC. A peer that does
// not answer in time yields a failed result; the stage itself keeps waiting
// for a quorum of the others.
const DefaultPerPeerTimeout = 2 * time.Second

// PeerSet is the gRPC-backed peer set a round runs against. It covers the
// whole cluster, local process included: broadcasts to self loop back over
// the transport like any other peer.
type PeerSet struct {
	addrs       []string
	majority    int
	clients     *ClientManager
	callTimeout time.Duration
}

// NewPeerSet creates a peer set over the given addresses with the given
// majority threshold.
func NewPeerSet(addrs []string, majority int, clients *ClientManager) *PeerSet {
	return &PeerSet{
		addrs:       addrs,
		majority:    majority,
		clients:     clients,
		callTimeout: DefaultPerPeerTimeout,
	}
}

// Majority reports how many successful responses close a stage.
func (p *PeerSet) Majority() int { return p.majority }

// BroadcastRead fans a read for the round out to every peer.
func (p *PeerSet) BroadcastRead(ctx context.Context, r round.Round) <-chan quorum.Result[register.ReadResponse[[]byte]] {
	req := &wire.ReadRequest{Round: roundToWire(r)}

	return quorum.FanOut(ctx, p.addrs, func(ctx context.Context, addr string) (register.ReadResponse[[]byte], error) {
		var zero register.ReadResponse[[]byte]

		client, err := p.clients.Acceptor(addr)
		if err != nil {
			return zero, err
		}

		callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
		defer cancel()

		reply, err := client.Read(callCtx, req)
		if err != nil {
			return zero, err
		}
		return register.ReadResponse[[]byte]{
			Round: roundFromWire(reply.Round),
			State: stateFromWire(reply.State),
		}, nil
	})
}

// BroadcastWrite fans a write of the tagged value out to every peer.
func (p *PeerSet) BroadcastWrite(ctx context.Context, v register.Value[[]byte]) <-chan quorum.Result[register.WriteResponse] {
	wv := valueToWire(v)
	req := &wire.WriteRequest{Value: wv}

	return quorum.FanOut(ctx, p.addrs, func(ctx context.Context, addr string) (register.WriteResponse, error) {
		var zero register.WriteResponse

		client, err := p.clients.Acceptor(addr)
		if err != nil {
			return zero, err
		}

		callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
		defer cancel()

		reply, err := client.Write(callCtx, req)
		if err != nil {
			return zero, err
		}
		return register.WriteResponse{
			Round:            roundFromWire(reply.Round),
			LastRoundEntered: roundFromWire(reply.LastRoundEntered),
		}, nil
	})
}

var _ register.Peers[[]byte] = (*PeerSet)(nil)
