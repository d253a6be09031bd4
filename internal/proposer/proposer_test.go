package proposer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"alphareg/internal/quorum"
	"alphareg/internal/register"
	"alphareg/internal/round"
)

// scriptedPeers aborts a configurable number of rounds before letting one
// succeed, recording every round the proposer attempted.
type scriptedPeers struct {
	acc        *register.Alpha[string]
	abortFirst int
	attempts   int32
	rounds     []round.Round
}

func (p *scriptedPeers) Majority() int { return 1 }

func (p *scriptedPeers) BroadcastRead(ctx context.Context, r round.Round) <-chan quorum.Result[register.ReadResponse[string]] {
	p.rounds = append(p.rounds, r)
	n := atomic.AddInt32(&p.attempts, 1)
	out := make(chan quorum.Result[register.ReadResponse[string]], 1)
	if int(n) <= p.abortFirst {
		// Report a promise above any round this proposer can be at.
		out <- quorum.Result[register.ReadResponse[string]]{Response: register.ReadResponse[string]{
			Round: r,
			State: register.State[string]{LastRoundEntered: round.Round{Tick: r.Tick + 1000, Process: 99}},
		}}
	} else {
		out <- quorum.Result[register.ReadResponse[string]]{Response: p.acc.Read(r)}
	}
	close(out)
	return out
}

func (p *scriptedPeers) BroadcastWrite(ctx context.Context, v register.Value[string]) <-chan quorum.Result[register.WriteResponse] {
	out := make(chan quorum.Result[register.WriteResponse], 1)
	out <- quorum.Result[register.WriteResponse]{Response: p.acc.Write(v)}
	close(out)
	return out
}

type fixedLeader round.ID

func (f fixedLeader) Leader() round.ID { return round.ID(f) }

type flippingLeader struct {
	calls int32
	id    round.ID
	after int32
}

func (f *flippingLeader) Leader() round.ID {
	if atomic.AddInt32(&f.calls, 1) > f.after {
		return f.id
	}
	return 0
}

func TestPropose_DecidesWhenLeader(t *testing.T) {
	peers := &scriptedPeers{acc: register.New[string]()}
	p := New[string](1, register.New[string](), peers, fixedLeader(1))

	v, err := p.Propose(context.Background(), "x")
	if err != nil {
		t.Fatalf("Propose failed: %v", err)
	}
	if v != "x" {
		t.Errorf("Expected decided value \"x\", got %q", v)
	}
}

func TestPropose_AdvancesRoundOnAbort(t *testing.T) {
	peers := &scriptedPeers{acc: register.New[string](), abortFirst: 3}
	p := New[string](1, register.New[string](), peers, fixedLeader(1))

	_, err := p.Propose(context.Background(), "x")
	if err != nil {
		t.Fatalf("Propose failed: %v", err)
	}

	if len(peers.rounds) != 4 {
		t.Fatalf("Expected 4 attempts (3 aborts + success), got %d", len(peers.rounds))
	}
	for i := 1; i < len(peers.rounds); i++ {
		if !peers.rounds[i-1].Before(peers.rounds[i]) {
			t.Errorf("Rounds must strictly increase across retries: %v then %v",
				peers.rounds[i-1], peers.rounds[i])
		}
	}
	for _, r := range peers.rounds {
		if r.Process != 1 {
			t.Errorf("Proposer must keep its own process id in rounds, got %v", r)
		}
	}
}

func TestPropose_WaitsForLeadership(t *testing.T) {
	peers := &scriptedPeers{acc: register.New[string]()}
	fd := &flippingLeader{id: 1, after: 5}
	p := New[string](1, register.New[string](), peers, fd)

	v, err := p.Propose(context.Background(), "x")
	if err != nil {
		t.Fatalf("Propose failed: %v", err)
	}
	if v != "x" {
		t.Errorf("Expected decided value \"x\", got %q", v)
	}
	if atomic.LoadInt32(&fd.calls) <= 5 {
		t.Error("Detector should have been consulted on every iteration")
	}
	// No round was attempted until the detector named this process leader.
	if peers.rounds[0].Tick < 5 {
		t.Errorf("Rounds must advance while not leader, first attempted round %v", peers.rounds[0])
	}
}

func TestPropose_NeverAttemptsWhileNotLeader(t *testing.T) {
	peers := &scriptedPeers{acc: register.New[string]()}
	p := New[string](1, register.New[string](), peers, fixedLeader(2))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := p.Propose(ctx, "x")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected context deadline, got %v", err)
	}
	if atomic.LoadInt32(&peers.attempts) != 0 {
		t.Errorf("Non-leader must not attempt rounds, attempted %d", peers.attempts)
	}
}

func TestPropose_SurfacesEmptyReadResponse(t *testing.T) {
	peers := &scriptedPeers{acc: register.New[string]()}
	peersZero := &zeroMajority{scriptedPeers: peers}
	p := New[string](1, register.New[string](), peersZero, fixedLeader(1))

	_, err := p.Propose(context.Background(), "x")
	if !errors.Is(err, register.ErrEmptyReadResponse) {
		t.Fatalf("Expected ErrEmptyReadResponse, got %v", err)
	}
}

type zeroMajority struct {
	*scriptedPeers
}

func (z *zeroMajority) Majority() int { return 0 }
