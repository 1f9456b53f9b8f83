package sampler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dicklesworthstone/sysmonlog/internal/model"
)

// Collector turns one Source reading into a Sample.
type Collector struct {
	Source Source
	Now    func() time.Time
	Log    zerolog.Logger
}

func NewCollector(src Source, log zerolog.Logger) *Collector {
	return &Collector{Source: src, Now: time.Now, Log: log}
}

// Sample reads host totals, then the process table, and builds the Sample.
// The timestamp is taken once the CPU window has elapsed.
func (c *Collector) Sample(ctx context.Context) (model.Sample, error) {
	sys, err := c.Source.System(ctx)
	if err != nil {
		return model.Sample{}, err
	}
	ts := model.FormatTimestamp(c.Now())

	results, err := c.Source.Processes(ctx)
	if err != nil {
		return model.Sample{}, err
	}
	procs, omitted, err := Filter(results)
	if err != nil {
		return model.Sample{}, err
	}
	if omitted > 0 {
		c.Log.Debug().Int("omitted", omitted).Int("kept", len(procs)).Msg("skipped unreadable processes")
	}
	topCPU, topRAM, err := FindTop(procs)
	if err != nil {
		return model.Sample{}, fmt.Errorf("finding top consumers among %d processes: %w", len(results), err)
	}

	return model.Sample{
		Timestamp:   ts,
		CPUPercent:  sys.CPUPercent,
		RAMPercent:  sys.RAMPercent,
		DiskPercent: sys.DiskPercent,
		NetSentMB:   model.BytesToMB(sys.NetSentBytes),
		NetRecvMB:   model.BytesToMB(sys.NetRecvBytes),
		TopCPU:      validLabel(topCPU.CPULabel()),
		TopRAM:      validLabel(topRAM.RAMLabel()),
	}, nil
}

// validLabel replaces invalid UTF-8 in process names so that every export
// format carries the same text.
func validLabel(s string) string { return strings.ToValidUTF8(s, "\uFFFD") }
