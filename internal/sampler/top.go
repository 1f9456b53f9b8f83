package sampler

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/Dicklesworthstone/sysmonlog/internal/model"
)

var (
	// ErrZombie marks a process that has exited but not been reaped.
	ErrZombie = errors.New("process is a zombie")
	// ErrNoProcesses is returned when no process survived filtering, so no
	// top consumer exists for the tick.
	ErrNoProcesses = errors.New("no readable processes")

	errNoReading = errors.New("no reading returned")
)

// Transient reports whether a per-process read failure is one of the races
// that enumeration tolerates: the process is gone, access was denied, or it
// is a zombie.
func Transient(err error) bool {
	switch {
	case errors.Is(err, process.ErrorProcessNotRunning),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, syscall.ESRCH):
		return true
	case errors.Is(err, os.ErrPermission):
		return true
	case errors.Is(err, ErrZombie):
		return true
	}
	return false
}

// Filter keeps the successfully read processes in enumeration order and
// drops transient failures. Any other failure is returned.
func Filter(results []model.ProcessResult) (procs []model.Process, omitted int, err error) {
	procs = make([]model.Process, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			procs = append(procs, r.Process)
			continue
		}
		if !Transient(r.Err) {
			return nil, omitted, fmt.Errorf("reading process %d: %w", r.Process.PID, r.Err)
		}
		omitted++
	}
	return procs, omitted, nil
}

// FindTop returns the process with the highest CPU percent and the one with
// the highest memory percent. On ties the first one in procs wins.
func FindTop(procs []model.Process) (topCPU, topRAM model.Process, err error) {
	if len(procs) == 0 {
		return model.Process{}, model.Process{}, ErrNoProcesses
	}
	topCPU, topRAM = procs[0], procs[0]
	for _, p := range procs[1:] {
		if p.CPUPercent > topCPU.CPUPercent {
			topCPU = p
		}
		if p.MemPercent > topRAM.MemPercent {
			topRAM = p
		}
	}
	return topCPU, topRAM, nil
}
