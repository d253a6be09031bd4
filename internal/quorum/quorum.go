package quorum

import (
	"context"
	"sync"
)

// Majority returns the smallest acknowledgement count m such that any two
// sets of m peers drawn from n intersect: n/2 + 1.
func Majority(n int) int {
	return n/2 + 1
}

// Intersects reports whether every two subsets of size m drawn from n peers
// share at least one member.
func Intersects(n, m int) bool {
	return 2*m > n
}

// Result is one peer's outcome of a broadcast: either a response or a
// transport-level error.
type Result[T any] struct {
	Peer     string
	Response T
	Err      error
}

// BroadcastFunc performs one call against a single peer.
type BroadcastFunc[T any] func(ctx context.Context, peer string) (T, error)

// FanOut invokes fn against every peer concurrently and returns a channel
// carrying one Result per peer. The channel is buffered for the full peer
// set, so a consumer that stops early never blocks the remaining calls; it
// is closed once every peer has reported.
func FanOut[T any](ctx context.Context, peers []string, fn BroadcastFunc[T]) <-chan Result[T] {
	out := make(chan Result[T], len(peers))

	var wg sync.WaitGroup
	for _, peer := range peers {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			resp, err := fn(ctx, p)
			out <- Result[T]{Peer: p, Response: resp, Err: err}
		}(peer)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// Collect reads results until need successes have arrived and returns their
// responses. Failed results do not count and are discarded. If the stream is
// exhausted before need successes, Collect blocks until ctx is cancelled:
// a stage that cannot reach quorum never completes on its own.
func Collect[T any](ctx context.Context, results <-chan Result[T], need int) ([]T, error) {
	var collected []T

	for len(collected) < need {
		if results == nil {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		select {
		case res, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			if res.Err != nil {
				continue
			}
			collected = append(collected, res.Response)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return collected, nil
}
