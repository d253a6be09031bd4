package proposer

import (
	"context"
	"time"

	"alphareg/internal/register"
	"alphareg/internal/round"
)

// DefaultLeaderPoll is how long a non-leader waits before consulting the
// failure detector again.
const DefaultLeaderPoll = 10 * time.Millisecond

// FailureDetector is the external oracle reporting which process is
// currently believed to be leader. Consulted once per loop iteration,
// never cached.
type FailureDetector interface {
	Leader() round.ID
}

// Proposer drives rounds of the register protocol for one process.
type Proposer[V any] struct {
	id         round.ID
	reg        *register.Alpha[V]
	peers      register.Peers[V]
	fd         FailureDetector
	leaderPoll time.Duration
}

// New returns a proposer for the given process. reg must be the same
// register instance the process serves to remote proposers.
func New[V any](id round.ID, reg *register.Alpha[V], peers register.Peers[V], fd FailureDetector) *Proposer[V] {
	return &Proposer[V]{
		id:         id,
		reg:        reg,
		peers:      peers,
		fd:         fd,
		leaderPoll: DefaultLeaderPoll,
	}
}

// Propose blocks until the cluster decides a value and returns it. The
// returned value is the proposed one only if no earlier value was carried
// forward by a read stage. Aborted rounds are retried at the next round
// indefinitely; the only errors are a cancelled context and the
// non-retryable register.ErrEmptyReadResponse.
func (p *Proposer[V]) Propose(ctx context.Context, value V) (V, error) {
	var zero V
	r := round.New(p.id)

	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		if p.fd.Leader() == p.id {
			v, ok, err := p.reg.Run(ctx, p.peers, r, value)
			if err != nil {
				return zero, err
			}
			if ok {
				return v, nil
			}
		} else {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(p.leaderPoll):
			}
		}

		r = r.Next()
	}
}
