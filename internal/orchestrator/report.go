package orchestrator

import (
	"log/slog"
	"time"

	"github.com/atlanticdynamic/cornflakes/internal/lint"
	"github.com/gofrs/uuid/v5"
	"github.com/robbyt/go-loglater"
	"github.com/robbyt/go-loglater/storage"
)

// RunReport describes one lint run for one document.
type RunReport struct {
	ID          uuid.UUID
	URI         string
	Executable  string
	StartedAt   time.Time
	Duration    time.Duration
	Violations  int
	Diagnostics []lint.Diagnostic
	Err         error
	Logs        []storage.Record
}

// run tracks a RunReport while the run is in progress.
type run struct {
	report    *RunReport
	logger    *slog.Logger
	collector *loglater.LogCollector
}

func newRun(uri, executable string, handler slog.Handler) *run {
	id := uuid.Must(uuid.NewV6())
	collector := loglater.NewLogCollector(handler)
	return &run{
		report: &RunReport{
			ID:         id,
			URI:        uri,
			Executable: executable,
			StartedAt:  time.Now(),
		},
		logger:    slog.New(collector).With("run_id", id.String(), "uri", uri),
		collector: collector,
	}
}

// finish stamps the report and captures the run's log history.
func (r *run) finish(err error) *RunReport {
	r.report.Duration = time.Since(r.report.StartedAt)
	r.report.Err = err
	r.report.Logs = r.collector.GetLogs()
	return r.report
}
