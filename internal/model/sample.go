package model

import (
	"fmt"
	"strconv"
	"time"
)

// TimestampLayout is the second-precision local time format used for samples.
const TimestampLayout = "2006-01-02 15:04:05"

const bytesPerMB = 1024 * 1024

// Column names shared by the CSV header and the JSON object keys.
const (
	ColTimestamp = "Timestamp"
	ColCPU       = "CPU Usage (%)"
	ColRAM       = "RAM Usage (%)"
	ColDisk      = "Disk Usage (%)"
	ColNetSent   = "Network Sent (MB)"
	ColNetRecv   = "Network Received (MB)"
	ColTopCPU    = "Top CPU Process"
	ColTopRAM    = "Top RAM Process"
)

// Columns lists the exported fields in file order.
var Columns = []string{
	ColTimestamp, ColCPU, ColRAM, ColDisk,
	ColNetSent, ColNetRecv, ColTopCPU, ColTopRAM,
}

// Sample is one timestamped resource snapshot. It is never modified after
// it has been appended to a Log.
type Sample struct {
	Timestamp   string
	CPUPercent  float64 // passed through unclamped, may exceed 100
	RAMPercent  float64
	DiskPercent float64 // root filesystem by default
	NetSentMB   float64 // cumulative since boot
	NetRecvMB   float64 // cumulative since boot
	TopCPU      string
	TopRAM      string
}

// Record returns the sample as strings in Columns order.
func (s Sample) Record() []string {
	return []string{
		s.Timestamp,
		formatFloat(s.CPUPercent),
		formatFloat(s.RAMPercent),
		formatFloat(s.DiskPercent),
		formatFloat(s.NetSentMB),
		formatFloat(s.NetRecvMB),
		s.TopCPU,
		s.TopRAM,
	}
}

// Process is a single entry of the process table.
type Process struct {
	PID        int32
	Name       string
	CPUPercent float64
	MemPercent float64
}

// CPULabel renders "<name> (PID <pid> - <cpu>%)".
func (p Process) CPULabel() string { return label(p.Name, p.PID, p.CPUPercent) }

// RAMLabel renders "<name> (PID <pid> - <mem>%)".
func (p Process) RAMLabel() string { return label(p.Name, p.PID, p.MemPercent) }

// ProcessResult is the outcome of reading one process. Exactly one of
// Process or Err is meaningful.
type ProcessResult struct {
	Process Process
	Err     error
}

// FormatTimestamp formats t in the sample layout using the local clock.
func FormatTimestamp(t time.Time) string { return t.Local().Format(TimestampLayout) }

// BytesToMB converts a byte counter to binary megabytes.
func BytesToMB(b uint64) float64 { return float64(b) / bytesPerMB }

func label(name string, pid int32, pct float64) string {
	return fmt.Sprintf("%s (PID %d - %s%%)", name, pid, formatFloat(pct))
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
