// internal/runner/runner.go
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bartek5186/memlab/internal/db"
	"github.com/bartek5186/memlab/internal/demos"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrBusy is returned when Run is called while another demo is still running.
var ErrBusy = errors.New("another demo is running")

// Store persists finished runs. *db.Handle satisfies it.
type Store interface {
	RecordRun(ctx context.Context, rec db.RunRecord) error
}

type Result struct {
	RunID       string
	DemoID      string
	DisplayName string
	StartedAt   time.Time
	Duration    time.Duration
	Err         error
}

type Runner struct {
	log     zerolog.Logger  // logowanie
	reg     *demos.Registry // katalog demo
	store   Store           // historia, może być nil
	timeout time.Duration   // 0 = bez limitu
	mu      sync.Mutex      // ochrona running/busy/runs
	running string          // id aktualnie działającego demo (może być "")
	busy    bool            // true od begin do end
	runs    uint64          // licznik uruchomień
}

func New(log zerolog.Logger, reg *demos.Registry, store Store, timeout time.Duration) *Runner {
	return &Runner{
		log:     log.With().Str("component", "runner").Logger(),
		reg:     reg,
		store:   store,
		timeout: timeout,
	}
}

// Run creates a fresh instance of id and executes it, writing demo output to out.
// The returned error is ErrNotFound or ErrBusy (wrapped) when nothing ran, or the
// demo's own error; in the latter case the Result is non-nil too.
func (r *Runner) Run(ctx context.Context, id string, out io.Writer) (*Result, error) {
	entry, ok := r.reg.Get(id)
	if !ok {
		return nil, fmt.Errorf("run %q: %w", id, demos.ErrNotFound)
	}
	d, ok := r.reg.Create(id)
	if !ok {
		return nil, fmt.Errorf("create %q: %w", id, demos.ErrNotFound)
	}

	if err := r.begin(id); err != nil {
		return nil, err
	}
	defer r.end()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	res := &Result{
		RunID:       uuid.NewString(),
		DemoID:      id,
		DisplayName: entry.DisplayName,
		StartedAt:   time.Now(),
	}
	log := r.log.With().Str("demo", id).Str("run_id", res.RunID).Logger()
	log.Info().Msg("demo start")

	res.Err = execute(ctx, d, out)
	res.Duration = time.Since(res.StartedAt)

	if res.Err != nil {
		log.Error().Err(res.Err).Dur("took", res.Duration).Msg("demo failed")
	} else {
		log.Info().Dur("took", res.Duration).Msg("demo done")
	}

	r.record(ctx, log, res)
	return res, res.Err
}

// IsRunning reports whether a demo is executing and which one.
func (r *Runner) IsRunning() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running, r.busy
}

// Runs returns how many demos this runner has started.
func (r *Runner) Runs() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs
}

func (r *Runner) begin(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy {
		return fmt.Errorf("run %q while %q is running: %w", id, r.running, ErrBusy)
	}
	r.running = id
	r.busy = true
	r.runs++
	return nil
}

func (r *Runner) end() {
	r.mu.Lock()
	r.running = ""
	r.busy = false
	r.mu.Unlock()
}

// execute turns a panicking demo into an error so one bad demo does not take
// the menu down.
func execute(ctx context.Context, d demos.Demo, out io.Writer) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("demo %q panicked: %v", d.Name(), p)
		}
	}()
	return d.Run(ctx, out)
}

// record never fails the run; a broken history store only costs a log line.
func (r *Runner) record(ctx context.Context, log zerolog.Logger, res *Result) {
	if r.store == nil {
		return
	}
	rec := db.RunRecord{
		RunID:       res.RunID,
		DemoID:      res.DemoID,
		DisplayName: res.DisplayName,
		Status:      db.StatusOK,
		DurationMs:  res.Duration.Milliseconds(),
		StartedAt:   res.StartedAt.UTC(),
	}
	if res.Err != nil {
		rec.Status = db.StatusFailed
		rec.Error = res.Err.Error()
	}
	// zapis historii nie powinien zależeć od timeoutu demo
	if err := r.store.RecordRun(context.WithoutCancel(ctx), rec); err != nil {
		log.Warn().Err(err).Msg("history not saved")
	}
}
