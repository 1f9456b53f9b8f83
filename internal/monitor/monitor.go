// Package monitor runs the sampling loop: one sample per tick, console
// report and alerts, a full export plus chart every Cadence samples, and a
// final export when interrupted.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dicklesworthstone/sysmonlog/internal/config"
	apperrors "github.com/Dicklesworthstone/sysmonlog/internal/errors"
	"github.com/Dicklesworthstone/sysmonlog/internal/model"
	"github.com/Dicklesworthstone/sysmonlog/internal/ui"
)

// State of the loop. The only transitions are Running to Stopping to
// Stopped.
type State int

const (
	Idle State = iota
	Running
	Stopping
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	}
	return "idle"
}

// Sampler produces one sample per call.
type Sampler interface {
	Sample(ctx context.Context) (model.Sample, error)
}

// Exporter writes the full log to its destinations.
type Exporter interface {
	Export(samples []model.Sample) error
	Destinations() []string
}

// Loop is single-threaded; the log is only touched by Run.
type Loop struct {
	cfg      config.Config
	sampler  Sampler
	exporter Exporter
	viz      ui.Visualizer
	report   *ui.Reporter
	log      zerolog.Logger

	samples model.Log
	state   State
}

func New(cfg config.Config, s Sampler, e Exporter, v ui.Visualizer, r *ui.Reporter, log zerolog.Logger) *Loop {
	return &Loop{
		cfg:      cfg,
		sampler:  s,
		exporter: e,
		viz:      v,
		report:   r,
		log:      log,
	}
}

// Run samples until ctx is cancelled or a fatal error occurs. Cancellation
// is the normal way to stop: the log is exported one last time, even when
// empty, and Run returns nil. A sample that is being taken when ctx is
// cancelled is completed first.
//
// On a fatal sampling or display error the samples collected so far are
// still exported before the error is returned. A failed export is not
// retried.
func (l *Loop) Run(ctx context.Context) error {
	if l.state != Idle {
		return fmt.Errorf("monitor already %s", l.state)
	}
	l.state = Running
	l.report.Start()

	runErr := l.loop(ctx)
	l.state = Stopping

	var expErr apperrors.ExportError
	switch {
	case runErr == nil:
		l.report.Stopping()
		if err := l.exporter.Export(l.samples.All()); err != nil {
			l.state = Stopped
			return err
		}
		l.report.Exported(l.exporter.Destinations())
	case errors.As(runErr, &expErr):
		// not retried
	default:
		if err := l.exporter.Export(l.samples.All()); err != nil {
			l.log.Error().Err(err).Msg("final export after failure")
		} else {
			l.log.Info().Int("samples", l.samples.Len()).Msg("exported samples collected before failure")
		}
	}
	l.state = Stopped
	return runErr
}

func (l *Loop) loop(ctx context.Context) error {
	for ctx.Err() == nil {
		if err := l.tick(ctx); err != nil {
			if errors.Is(err, ui.ErrInterrupted) {
				return nil
			}
			return err
		}
		if !sleep(ctx, l.cfg.Interval) {
			return nil
		}
	}
	return nil
}

func (l *Loop) tick(ctx context.Context) error {
	// Interrupts are only observed between ticks.
	s, err := l.sampler.Sample(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("tick %d: %w", l.samples.Len()+1, err)
	}
	l.samples.Append(s)
	l.log.Debug().Int("tick", l.samples.Len()).Float64("cpu", s.CPUPercent).Float64("ram", s.RAMPercent).Msg("sampled")

	l.report.Sample(s)
	for _, a := range Alerts(s, l.cfg.Thresholds) {
		l.report.Alert(a)
	}

	if l.samples.Len()%l.cfg.Cadence != 0 {
		return nil
	}
	if err := l.exporter.Export(l.samples.All()); err != nil {
		return err
	}
	l.log.Info().Int("samples", l.samples.Len()).Strs("files", l.exporter.Destinations()).Msg("exported")
	return l.viz.Plot(ctx, l.samples.All(), l.cfg.Thresholds)
}

// Alerts returns the readings of s strictly above their thresholds, CPU
// first.
func Alerts(s model.Sample, th config.Thresholds) []ui.Alert {
	var out []ui.Alert
	if s.CPUPercent > th.CPU {
		out = append(out, ui.Alert{Resource: "CPU", Value: s.CPUPercent})
	}
	if s.RAMPercent > th.RAM {
		out = append(out, ui.Alert{Resource: "RAM", Value: s.RAMPercent})
	}
	return out
}

// State reports the current loop state.
func (l *Loop) State() State { return l.state }

// Samples returns the collected samples in order.
func (l *Loop) Samples() []model.Sample { return l.samples.All() }

// sleep waits for d and reports false if ctx was cancelled first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
