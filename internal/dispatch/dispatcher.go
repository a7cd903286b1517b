// Package dispatch is the concurrency boundary of the query engine. It
// accepts path queries, enforces per-requester rate limits, consults the
// result cache, deduplicates identical in-flight solves, and bounds every
// solver execution with a wall-clock timeout.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/akorchak/pathfinder/internal/cache"
	"github.com/akorchak/pathfinder/internal/graph"
	"github.com/akorchak/pathfinder/internal/metrics"
	"github.com/akorchak/pathfinder/internal/query"
	"github.com/akorchak/pathfinder/internal/solver"
)

// SolveFunc computes a path query against a snapshot. The default is
// solver.Solve; tests substitute counting or failing implementations.
type SolveFunc func(ctx context.Context, snap *graph.Snapshot, q *query.Query, opts ...solver.Option) (*query.Result, error)

// Conf holds the dispatcher's tunables.
type Conf struct {
	// SolveTimeout bounds a single solver execution.
	SolveTimeout time.Duration
	// RateRequests tokens are granted to each requester per RateWindow.
	RateRequests int
	RateWindow   time.Duration
	// RateBurst caps how many tokens a requester can accumulate.
	RateBurst int
	// SolverOptions are passed through to every solve (heuristic selection).
	SolverOptions []solver.Option
	// Solve overrides the solver entry point when non-nil.
	Solve SolveFunc
}

// Dispatcher routes queries through rate limiting, the cache, and the
// single-flight group. Results returned from Handle are shared between
// callers and must be treated as read-only.
type Dispatcher struct {
	store *graph.Store
	cache *cache.Cache
	conf  Conf

	flight singleflight.Group

	mu       sync.Mutex
	limiters map[string]*rate.Limiter

	inflight atomic.Int64
}

// New creates a Dispatcher on top of store and c. Zero conf fields fall back
// to safe defaults.
func New(store *graph.Store, c *cache.Cache, conf Conf) *Dispatcher {
	if conf.SolveTimeout <= 0 {
		conf.SolveTimeout = 5 * time.Second
	}
	if conf.RateRequests <= 0 {
		conf.RateRequests = 10
	}
	if conf.RateWindow <= 0 {
		conf.RateWindow = time.Minute
	}
	if conf.RateBurst <= 0 {
		conf.RateBurst = conf.RateRequests
	}
	if conf.Solve == nil {
		conf.Solve = solver.Solve
	}
	return &Dispatcher{
		store:    store,
		cache:    c,
		conf:     conf,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Handle answers a single query. It returns one of the typed failures
// (ErrRateLimited, ErrTimeout, ErrNotReady, ErrInternal, or the solver's
// ErrNodeNotFound / ErrNoPathFound) — nothing else crosses this boundary.
func (d *Dispatcher) Handle(ctx context.Context, q *query.Query) (*query.Result, error) {
	d.inflight.Add(1)
	metrics.InflightQueries.Inc()
	defer func() {
		d.inflight.Add(-1)
		metrics.InflightQueries.Dec()
	}()

	if !d.limiter(q.Requester).Allow() {
		metrics.RateLimited.Inc()
		metrics.QueriesTotal.WithLabelValues("rate_limited").Inc()
		return nil, fmt.Errorf("%w: requester %q", ErrRateLimited, q.Requester)
	}

	// One snapshot per query: captured once, used for the cache key and the
	// solve, so the result is always consistent with a single graph version.
	snap := d.store.Current()
	if snap == nil {
		metrics.QueriesTotal.WithLabelValues("not_ready").Inc()
		return nil, ErrNotReady
	}

	q.Normalize()
	sig := q.Signature()

	if res, ok := d.cache.Get(sig, snap.Version()); ok {
		metrics.CacheHits.Inc()
		metrics.QueriesTotal.WithLabelValues("hit").Inc()
		return res, nil
	}
	metrics.CacheMisses.Inc()

	key := fmt.Sprintf("%d:%s", snap.Version(), sig)
	resC := d.flight.DoChan(key, func() (any, error) {
		return d.solve(snap, q, sig)
	})

	select {
	case r := <-resC:
		if r.Err != nil {
			metrics.QueriesTotal.WithLabelValues(statusOf(r.Err)).Inc()
			return nil, r.Err
		}
		metrics.QueriesTotal.WithLabelValues("solved").Inc()
		return r.Val.(*query.Result), nil
	case <-ctx.Done():
		// The caller gave up; the owning solve keeps running for any other
		// waiters and is still bounded by its own timeout.
		metrics.QueriesTotal.WithLabelValues("canceled").Inc()
		return nil, fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
	}
}

// solve is the single-flight owner body: it runs the solver under the
// configured wall-clock budget and caches successful results. Failures are
// never cached.
func (d *Dispatcher) solve(snap *graph.Snapshot, q *query.Query, sig string) (res *query.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("solver panic", "sig", sig, "panic", r)
			res, err = nil, ErrInternal
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.conf.SolveTimeout)
	defer cancel()

	start := time.Now()
	res, err = d.conf.Solve(ctx, snap, q, d.conf.SolverOptions...)
	metrics.SolveDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %v", ErrTimeout, d.conf.SolveTimeout)
		}
		return nil, err
	}
	d.cache.Put(sig, snap.Version(), res)
	return res, nil
}

// limiter returns the requester's token bucket, creating it on first use.
func (d *Dispatcher) limiter(requester string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.limiters[requester]
	if !ok {
		every := d.conf.RateWindow / time.Duration(d.conf.RateRequests)
		l = rate.NewLimiter(rate.Every(every), d.conf.RateBurst)
		d.limiters[requester] = l
	}
	return l
}

// Inflight returns the number of queries currently inside Handle.
func (d *Dispatcher) Inflight() int64 {
	return d.inflight.Load()
}

func statusOf(err error) string {
	switch {
	case errors.Is(err, solver.ErrNoPathFound):
		return "no_path"
	case errors.Is(err, solver.ErrNodeNotFound), errors.Is(err, solver.ErrNoTargets):
		return "not_found"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrInternal):
		return "internal"
	default:
		return "error"
	}
}
