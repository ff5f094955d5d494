package hits

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/edumetrics/enem-pipeline/internal/microdata"
)

// Progress receives stage timing reports from the engine. It carries
// no required behavior; the default implementation logs.
type Progress func(stage string, rows int, elapsed time.Duration)

type Option func(*Engine)

// WithWorkers sets the number of goroutines used for the hit-counting
// pass. Values below 1 fall back to GOMAXPROCS.
func WithWorkers(n int) Option { return func(e *Engine) { e.workers = n } }

// WithProgress installs a stage observer.
func WithProgress(p Progress) Option { return func(e *Engine) { e.progress = p } }

// WithLogger overrides the engine logger.
func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.log = l } }

// Engine runs the three passes of the hit pipeline: per-candidate hit
// counting (sharded, no shared state), per-subject median labeling
// (one goroutine per subject, full materialization barrier in
// between), and the attribute join.
type Engine struct {
	workers  int
	progress Progress
	log      *slog.Logger
}

func New(opts ...Option) *Engine {
	e := &Engine{
		workers: runtime.GOMAXPROCS(0),
		log:     slog.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	if e.workers < 1 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	if e.progress == nil {
		log := e.log
		e.progress = func(stage string, rows int, elapsed time.Duration) {
			log.Info("stage done", "stage", stage, "rows", rows, "elapsed", elapsed.Round(time.Millisecond))
		}
	}
	return e
}

// Run executes the full transformation. The output has exactly one
// record per input candidate; ordering follows the input but carries
// no meaning for consumers.
func (e *Engine) Run(ctx context.Context, cands []microdata.Candidate) ([]Labeled, error) {
	recs, err := e.countAll(ctx, cands)
	if err != nil {
		return nil, err
	}
	out, err := e.label(ctx, recs)
	if err != nil {
		return nil, err
	}

	t0 := time.Now()
	attachAttributes(out, cands, e.log)
	e.progress("assemble", len(out), time.Since(t0))
	return out, nil
}

// countAll computes hit records for every candidate, sharded across
// workers. Each shard writes disjoint indices of the result slice, so
// no locking is needed.
func (e *Engine) countAll(ctx context.Context, cands []microdata.Candidate) ([]Record, error) {
	t0 := time.Now()
	recs := make([]Record, len(cands))

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(cands) + e.workers - 1) / e.workers
	for lo := 0; lo < len(cands); lo += chunk {
		lo, hi := lo, min(lo+chunk, len(cands))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if i%4096 == 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
				}
				recs[i] = Count(&cands[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.progress("count", len(recs), time.Since(t0))
	return recs, nil
}

// label computes group medians and indicators for the four subjects
// concurrently. Subjects are independent: each goroutine builds its
// own grouping table and writes its own slot of every output record.
func (e *Engine) label(ctx context.Context, recs []Record) ([]Labeled, error) {
	t0 := time.Now()
	out := make([]Labeled, len(recs))
	for i := range recs {
		out[i].RegistrationID = recs[i].RegistrationID
		out[i].ExamYear = recs[i].ExamYear
	}

	g, _ := errgroup.WithContext(ctx)
	for _, s := range microdata.Subjects() {
		s := s
		g.Go(func() error {
			labelSubject(recs, out, int(s))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.progress("label", len(out), time.Since(t0))
	return out, nil
}
