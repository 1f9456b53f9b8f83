//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

package sampler

import (
	"context"

	"github.com/Dicklesworthstone/sysmonlog/internal/model"
)

// SystemStats is one host-wide reading. Network counters are raw cumulative
// bytes since boot.
type SystemStats struct {
	CPUPercent   float64
	RAMPercent   float64
	DiskPercent  float64
	NetSentBytes uint64
	NetRecvBytes uint64
}

// Source provides OS metrics and the process table.
type Source interface {
	// System blocks for the CPU measurement window and returns host totals.
	// Any failed query is returned as an error; values are never zero-filled.
	System(ctx context.Context) (SystemStats, error)
	// Processes enumerates the process table. Per-process read failures are
	// reported in the individual results, not as the returned error.
	Processes(ctx context.Context) ([]model.ProcessResult, error)
}
