package detector

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"alphareg/internal/round"
)

type probeScript struct {
	mu   sync.Mutex
	down map[string]bool
}

func (p *probeScript) probe(ctx context.Context, addr string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.down[addr] {
		return errors.New("unreachable")
	}
	return nil
}

func (p *probeScript) setDown(addr string, down bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.down[addr] = down
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Condition not reached in time")
}

func testPeers() map[round.ID]string {
	return map[round.ID]string{
		1: "addr1",
		2: "addr2",
		3: "addr3",
	}
}

func TestLeader_LowestAliveID(t *testing.T) {
	d := New(2, testPeers(), 10*time.Millisecond, 50*time.Millisecond)
	if got := d.Leader(); got != 1 {
		t.Errorf("All members start alive; expected leader 1, got %d", got)
	}
}

func TestLeader_FailsOverWhenLeaderDies(t *testing.T) {
	script := &probeScript{down: map[string]bool{"addr1": true}}

	d := New(2, testPeers(), 10*time.Millisecond, 40*time.Millisecond)
	d.Start(script.probe)
	defer d.Stop()

	waitFor(t, 5*time.Second, func() bool { return d.Leader() == 2 })
}

func TestLeader_RecoversWhenPeerReturns(t *testing.T) {
	script := &probeScript{down: map[string]bool{"addr1": true}}

	d := New(2, testPeers(), 10*time.Millisecond, 40*time.Millisecond)
	d.Start(script.probe)
	defer d.Stop()

	waitFor(t, 5*time.Second, func() bool { return d.Leader() == 2 })

	script.setDown("addr1", false)
	waitFor(t, 5*time.Second, func() bool { return d.Leader() == 1 })
}

func TestLeader_SelfWhenAllOthersSuspect(t *testing.T) {
	script := &probeScript{down: map[string]bool{"addr1": true, "addr2": true, "addr3": true}}

	d := New(2, testPeers(), 10*time.Millisecond, 40*time.Millisecond)
	d.Start(script.probe)
	defer d.Stop()

	// Only the local process stays alive; it becomes leader even though a
	// lower id exists in the configured set.
	waitFor(t, 5*time.Second, func() bool { return d.Leader() == 2 })

	found := false
	for _, m := range d.Snapshot() {
		if m.ID == 2 && m.Status == Alive {
			found = true
		}
	}
	if !found {
		t.Error("Local process must always be alive in its own view")
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	d := New(1, testPeers(), time.Second, time.Second)

	snap := d.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("Expected 3 members, got %d", len(snap))
	}
	snap[0].Status = Suspect

	for _, m := range d.Snapshot() {
		if m.Status != Alive {
			t.Error("Snapshot mutation leaked into detector state")
		}
	}
}
