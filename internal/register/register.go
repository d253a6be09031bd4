package register

import (
	"errors"
	"sync"

	"alphareg/internal/round"
)

// ErrEmptyReadResponse is returned when a read stage cleared its majority
// threshold yet collected nothing to select from. Only reachable when the
// quorum collaborator reports a majority of zero; treated as a configuration
// error, not retried.
var ErrEmptyReadResponse = errors.New("register: no read response to select from")

// Value is a proposal tagged with the round under which it was written.
// Immutable once constructed; superseded only by a strictly later write.
type Value[V any] struct {
	Value              V
	LastRoundWithWrite round.Round
}

// State is a snapshot of a register: the highest round it has entered and
// the most recently accepted value, if any.
type State[V any] struct {
	LastRoundEntered round.Round
	Value            *Value[V]
}

// ReadResponse is an acceptor's answer to a Read: the echoed request round
// and a snapshot of the acceptor's state after recording the promise.
type ReadResponse[V any] struct {
	Round round.Round
	State State[V]
}

// WriteResponse is an acceptor's answer to a Write. LastRoundEntered is the
// acceptor's post-call state, so a proposer can tell it has been preempted
// even when the write itself was rejected.
type WriteResponse struct {
	Round            round.Round
	LastRoundEntered round.Round
}

// Alpha is one process's register. A single mutex serializes the acceptor
// handlers and the proposer's local update: every rule in the protocol needs
// the full state read and updated atomically.
type Alpha[V any] struct {
	mu               sync.Mutex
	lastRoundEntered round.Round
	value            *Value[V]
}

// New returns an empty register at the zero round.
func New[V any]() *Alpha[V] {
	return &Alpha[V]{}
}

// Read records a promise for the given round and returns a snapshot.
// A read raises lastRoundEntered to at least the requested round even when
// no write follows; the promise holds for the life of the register.
func (a *Alpha[V]) Read(r round.Round) ReadResponse[V] {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.lastRoundEntered = round.Max(a.lastRoundEntered, r)
	return ReadResponse[V]{Round: r, State: a.snapshotLocked()}
}

// Write accepts the value iff its round is at least lastRoundEntered and
// strictly newer than any stored value; otherwise it is a no-op read.
// Either way the response reports the post-call lastRoundEntered.
func (a *Alpha[V]) Write(v Value[V]) WriteResponse {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.writeLocked(v)
}

// Snapshot returns the current register state.
func (a *Alpha[V]) Snapshot() State[V] {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *Alpha[V]) writeLocked(v Value[V]) WriteResponse {
	r := v.LastRoundWithWrite

	if !r.Before(a.lastRoundEntered) && (a.value == nil || r.After(a.value.LastRoundWithWrite)) {
		a.lastRoundEntered = r
		accepted := v
		a.value = &accepted
	}

	return WriteResponse{Round: r, LastRoundEntered: a.lastRoundEntered}
}

func (a *Alpha[V]) snapshotLocked() State[V] {
	st := State[V]{LastRoundEntered: a.lastRoundEntered}
	if a.value != nil {
		v := *a.value
		st.Value = &v
	}
	return st
}
