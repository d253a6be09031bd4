package register

import (
	"context"

	"alphareg/internal/quorum"
	"alphareg/internal/round"
)

// ReadClient fans a read for the given round out to every peer. Each channel
// item is one peer's outcome; the channel closes once all peers reported.
type ReadClient[V any] interface {
	BroadcastRead(ctx context.Context, r round.Round) <-chan quorum.Result[ReadResponse[V]]
}

// WriteClient fans a write of the given value out to every peer.
type WriteClient[V any] interface {
	BroadcastWrite(ctx context.Context, v Value[V]) <-chan quorum.Result[WriteResponse]
}

// Quorum reports how many successful responses close a stage. Collaborators
// must keep Majority() <= peer count and 2*Majority() > peer count for the
// intersection argument to hold.
type Quorum interface {
	Majority() int
}

// Peers is the full peer-set contract a round runs against. The peer set
// includes the local process; broadcasts loop back over the transport.
type Peers[V any] interface {
	ReadClient[V]
	WriteClient[V]
	Quorum
}

// Run drives one round: read stage, then, if a value was carried forward,
// write stage. decided is false when either stage observed a higher round
// and aborted; aborting is the expected outcome under contention and the
// caller retries at a higher round. The context only bounds waiting for
// quorums; cancellation is the caller's to compose.
func (a *Alpha[V]) Run(ctx context.Context, peers Peers[V], r round.Round, value V) (decided V, ok bool, err error) {
	carried, ok, err := a.readStage(ctx, peers, r, value)
	if err != nil || !ok {
		var zero V
		return zero, false, err
	}
	return a.writeStage(ctx, peers, r, carried)
}

// readStage broadcasts a read and collects the first majority of successful
// snapshots. Any snapshot past the proposed round means a higher round is in
// flight: abort. Otherwise the stage selects the maximal snapshot and carries
// its value forward, falling back to the proposer's own candidate when no
// acceptor holds a value yet.
func (a *Alpha[V]) readStage(ctx context.Context, peers Peers[V], r round.Round, value V) (V, bool, error) {
	var zero V

	responses, err := quorum.Collect(ctx, peers.BroadcastRead(ctx, r), peers.Majority())
	if err != nil {
		return zero, false, err
	}

	for _, resp := range responses {
		if resp.State.LastRoundEntered.After(r) {
			return zero, false, nil
		}
	}

	best := maxResponse(responses)
	if best == nil {
		return zero, false, ErrEmptyReadResponse
	}
	if best.State.Value != nil {
		// Never override what a majority may already have decided.
		return best.State.Value.Value, true, nil
	}
	return value, true, nil
}

// writeStage applies the write rule to the local register first (the local
// process is one of the acceptors it solicits), then broadcasts the tagged
// value and collects the first majority of acknowledgements. Any responder
// already past this round means the decision is unsafe: abort.
func (a *Alpha[V]) writeStage(ctx context.Context, peers Peers[V], r round.Round, value V) (V, bool, error) {
	var zero V
	tagged := Value[V]{Value: value, LastRoundWithWrite: r}

	a.mu.Lock()
	a.writeLocked(tagged)
	a.mu.Unlock()

	responses, err := quorum.Collect(ctx, peers.BroadcastWrite(ctx, tagged), peers.Majority())
	if err != nil {
		return zero, false, err
	}

	for _, resp := range responses {
		if resp.LastRoundEntered.After(r) {
			return zero, false, nil
		}
	}

	return value, true, nil
}

// maxResponse picks the snapshot with the highest lastRoundEntered. Every
// non-preempting acceptor snapshots exactly at the requested round, so ties
// break by the stored value's write round: the freshest accepted value must
// win for earlier possibly-decided writes to survive.
func maxResponse[V any](responses []ReadResponse[V]) *ReadResponse[V] {
	var best *ReadResponse[V]
	for i := range responses {
		if best == nil || better(&responses[i], best) {
			best = &responses[i]
		}
	}
	return best
}

func better[V any](a, b *ReadResponse[V]) bool {
	if c := a.State.LastRoundEntered.Compare(b.State.LastRoundEntered); c != 0 {
		return c > 0
	}
	switch {
	case a.State.Value == nil:
		return false
	case b.State.Value == nil:
		return true
	default:
		return a.State.Value.LastRoundWithWrite.After(b.State.Value.LastRoundWithWrite)
	}
}
