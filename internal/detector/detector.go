package detector

import (
	"context"
	"log"
	"sync"
	"time"

	"alphareg/internal/round"
)

// Status is the detector's belief about a member.
type Status int

const (
	Alive Status = iota
	Suspect
)

// String returns the string representation of Status.
func (s Status) String() string {
	switch s {
	case Alive:
		return "ALIVE"
	case Suspect:
		return "SUSPECT"
	default:
		return "UNKNOWN"
	}
}

// Member is one process in the cluster.
type Member struct {
	ID       round.ID
	Addr     string
	Status   Status
	LastSeen time.Time
}

// ProbeFunc performs one liveness probe against a peer address.
type ProbeFunc func(ctx context.Context, addr string) error

// Detector probes every remote member on a fixed interval and marks members
// Suspect once they have not answered within the suspect timeout. The local
// process is always Alive.
type Detector struct {
	mu      sync.RWMutex
	localID round.ID
	members map[round.ID]*Member

	probeInterval  time.Duration
	suspectTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a detector over the full peer set (the local process may be
// included in peers or not; it is tracked as Alive either way).
func New(localID round.ID, peers map[round.ID]string, probeInterval, suspectTimeout time.Duration) *Detector {
	if probeInterval <= 0 {
		probeInterval = 1 * time.Second
	}
	if suspectTimeout <= 0 {
		suspectTimeout = 3 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	d := &Detector{
		localID:        localID,
		members:        make(map[round.ID]*Member),
		probeInterval:  probeInterval,
		suspectTimeout: suspectTimeout,
		ctx:            ctx,
		cancel:         cancel,
	}

	now := time.Now()
	for id, addr := range peers {
		d.members[id] = &Member{ID: id, Addr: addr, Status: Alive, LastSeen: now}
	}
	if _, ok := d.members[localID]; !ok {
		d.members[localID] = &Member{ID: localID, Status: Alive, LastSeen: now}
	}

	return d
}

// Start launches the probe and timeout loops.
func (d *Detector) Start(probe ProbeFunc) {
	d.wg.Add(2)

	go func() {
		defer d.wg.Done()
		ticker := time.NewTicker(d.probeInterval)
		defer ticker.Stop()

		for {
			select {
			case <-d.ctx.Done():
				return
			case <-ticker.C:
				d.probeAll(probe)
			}
		}
	}()

	go func() {
		defer d.wg.Done()
		ticker := time.NewTicker(d.probeInterval)
		defer ticker.Stop()

		for {
			select {
			case <-d.ctx.Done():
				return
			case <-ticker.C:
				d.checkTimeouts()
			}
		}
	}()
}

// Stop halts the loops and waits for them to exit.
func (d *Detector) Stop() {
	d.cancel()
	d.wg.Wait()
}

// Leader returns the lowest-id process currently believed alive. With a
// static peer set every detector converges on the same answer once probes
// stabilize; until then, disagreement only costs extra aborted rounds.
func (d *Detector) Leader() round.ID {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var leader round.ID
	found := false
	for id, m := range d.members {
		if m.Status != Alive {
			continue
		}
		if !found || id < leader {
			leader = id
			found = true
		}
	}
	if !found {
		return d.localID
	}
	return leader
}

// Snapshot returns a copy of the current membership view.
func (d *Detector) Snapshot() []Member {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Member, 0, len(d.members))
	for _, m := range d.members {
		out = append(out, *m)
	}
	return out
}

func (d *Detector) probeAll(probe ProbeFunc) {
	d.mu.RLock()
	targets := make([]Member, 0, len(d.members))
	for _, m := range d.members {
		if m.ID != d.localID {
			targets = append(targets, *m)
		}
	}
	d.mu.RUnlock()

	var wg sync.WaitGroup
	for _, target := range targets {
		wg.Add(1)
		go func(m Member) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(d.ctx, d.probeInterval)
			defer cancel()

			if err := probe(ctx, m.Addr); err == nil {
				d.markAlive(m.ID)
			}
		}(target)
	}
	wg.Wait()
}

func (d *Detector) markAlive(id round.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	m, ok := d.members[id]
	if !ok {
		return
	}
	if m.Status != Alive {
		log.Printf("[%d] Marked %d as ALIVE", d.localID, id)
	}
	m.Status = Alive
	m.LastSeen = time.Now()
}

func (d *Detector) checkTimeouts() {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	for id, m := range d.members {
		if id == d.localID || m.Status != Alive {
			continue
		}
		if now.Sub(m.LastSeen) > d.suspectTimeout {
			m.Status = Suspect
			log.Printf("[%d] Marked %d as SUSPECT (no heartbeat for %v)", d.localID, id, now.Sub(m.LastSeen))
		}
	}
}
