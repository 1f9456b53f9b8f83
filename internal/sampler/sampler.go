package sampler

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	apperrors "github.com/Dicklesworthstone/sysmonlog/internal/errors"
	"github.com/Dicklesworthstone/sysmonlog/internal/model"
)

// Host reads metrics of the local machine through gopsutil.
type Host struct {
	// Window is the CPU observation window; System blocks for this long.
	Window time.Duration
	// DiskPath is the mount point measured for disk usage.
	DiskPath string

	// Process handles are kept between calls so that per-process CPU percent
	// is the delta since the previous enumeration. A process seen for the
	// first time reports 0.
	procs map[int32]handle
}

// handle is a cached process together with its start time, which tells a
// reused PID apart from the process it was cached for.
type handle struct {
	proc    *process.Process
	created int64
}

func NewHost(window time.Duration, diskPath string) *Host {
	return &Host{
		Window:   window,
		DiskPath: diskPath,
		procs:    make(map[int32]handle),
	}
}

func (h *Host) System(ctx context.Context) (SystemStats, error) {
	cpuPct, err := cpu.PercentWithContext(ctx, h.Window, false)
	if err != nil {
		return SystemStats{}, apperrors.MetricError{Metric: "cpu percent", Cause: err}
	}
	if len(cpuPct) == 0 {
		return SystemStats{}, apperrors.MetricError{Metric: "cpu percent", Cause: errNoReading}
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return SystemStats{}, apperrors.MetricError{Metric: "memory usage", Cause: err}
	}

	du, err := disk.UsageWithContext(ctx, h.DiskPath)
	if err != nil {
		return SystemStats{}, apperrors.MetricError{Metric: "disk usage of " + quote(h.DiskPath), Cause: err}
	}

	nc, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return SystemStats{}, apperrors.MetricError{Metric: "network counters", Cause: err}
	}
	if len(nc) == 0 {
		return SystemStats{}, apperrors.MetricError{Metric: "network counters", Cause: errNoReading}
	}

	return SystemStats{
		CPUPercent:   round1(cpuPct[0]),
		RAMPercent:   round1(availablePercent(vm)),
		DiskPercent:  round1(du.UsedPercent),
		NetSentBytes: nc[0].BytesSent,
		NetRecvBytes: nc[0].BytesRecv,
	}, nil
}

func (h *Host) Processes(ctx context.Context) ([]model.ProcessResult, error) {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, apperrors.MetricError{Metric: "process table", Cause: err}
	}

	seen := make(map[int32]handle, len(pids))
	results := make([]model.ProcessResult, 0, len(pids))
	for _, pid := range pids {
		hd, err := h.lookup(ctx, pid)
		if err != nil {
			results = append(results, model.ProcessResult{Process: model.Process{PID: pid}, Err: err})
			continue
		}
		seen[pid] = hd
		results = append(results, readProcess(ctx, hd.proc))
	}
	// Drop handles of exited processes.
	h.procs = seen
	return results, nil
}

// lookup returns the cached handle for pid unless the PID now belongs to a
// process started at a different time.
func (h *Host) lookup(ctx context.Context, pid int32) (handle, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return handle{}, err
	}
	created, err := p.CreateTimeWithContext(ctx)
	if err != nil {
		if Transient(err) {
			return handle{}, err
		}
		created = 0
	}
	if cached, ok := h.procs[pid]; ok && cached.created == created {
		return cached, nil
	}
	return handle{proc: p, created: created}, nil
}

func readProcess(ctx context.Context, p *process.Process) model.ProcessResult {
	fail := func(err error) model.ProcessResult {
		return model.ProcessResult{Process: model.Process{PID: p.Pid}, Err: err}
	}
	// Status is not implemented on every platform; only a vanished or
	// forbidden process is reported from here.
	status, err := p.StatusWithContext(ctx)
	if err != nil && Transient(err) {
		return fail(err)
	}
	if slices.Contains(status, process.Zombie) {
		return fail(ErrZombie)
	}
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return fail(err)
	}
	cpuPct, err := p.PercentWithContext(ctx, 0)
	if err != nil {
		return fail(err)
	}
	memPct, err := p.MemoryPercentWithContext(ctx)
	if err != nil {
		return fail(err)
	}
	return model.ProcessResult{Process: model.Process{
		PID:        p.Pid,
		Name:       name,
		CPUPercent: round1(cpuPct),
		MemPercent: float64(memPct),
	}}
}

// availablePercent is the share of memory that is not available to new
// processes without swapping. UsedPercent leaves reclaimable memory out of
// the used side and reads lower.
func availablePercent(vm *mem.VirtualMemoryStat) float64 {
	if vm.Total == 0 || vm.Available > vm.Total {
		return vm.UsedPercent
	}
	return float64(vm.Total-vm.Available) / float64(vm.Total) * 100
}

// round1 rounds a percentage to one decimal place. Memory percent of a
// single process is reported unrounded.
func round1(pct float64) float64 { return math.Round(pct*10) / 10 }

func quote(s string) string { return `"` + s + `"` }
