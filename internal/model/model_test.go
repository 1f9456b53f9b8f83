package model

import (
	"testing"
	"time"
)

func TestBytesToMB(t *testing.T) {
	tests := []struct {
		name  string
		bytes uint64
		want  float64
	}{
		{"zero", 0, 0},
		{"one MiB", 1048576, 1.0},
		{"two MiB", 2097152, 2.0},
		{"half MiB", 524288, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BytesToMB(tt.bytes); got != tt.want {
				t.Errorf("BytesToMB(%d) = %v, want %v", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestProcessLabels(t *testing.T) {
	p := Process{PID: 4242, Name: "postgres", CPUPercent: 12.5, MemPercent: 3.25}
	if got, want := p.CPULabel(), "postgres (PID 4242 - 12.5%)"; got != want {
		t.Errorf("CPULabel() = %q, want %q", got, want)
	}
	if got, want := p.RAMLabel(), "postgres (PID 4242 - 3.25%)"; got != want {
		t.Errorf("RAMLabel() = %q, want %q", got, want)
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 3, 999, time.Local)
	if got, want := FormatTimestamp(ts), "2024-03-09 07:05:03"; got != want {
		t.Errorf("FormatTimestamp() = %q, want %q", got, want)
	}
}

func TestSampleRecordFollowsColumns(t *testing.T) {
	s := Sample{
		Timestamp:   "2024-01-01 00:00:00",
		CPUPercent:  81,
		RAMPercent:  50.5,
		DiskPercent: 33.3,
		NetSentMB:   2,
		NetRecvMB:   1,
		TopCPU:      "a (PID 1 - 81%)",
		TopRAM:      "b (PID 2 - 50.5%)",
	}
	rec := s.Record()
	if len(rec) != len(Columns) {
		t.Fatalf("Record() has %d fields, want %d", len(rec), len(Columns))
	}
	want := []string{"2024-01-01 00:00:00", "81", "50.5", "33.3", "2", "1", "a (PID 1 - 81%)", "b (PID 2 - 50.5%)"}
	for i := range want {
		if rec[i] != want[i] {
			t.Errorf("Record()[%d] = %q, want %q", i, rec[i], want[i])
		}
	}
}

func TestLog(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var l Log
		if l.Len() != 0 || len(l.All()) != 0 {
			t.Fatalf("new log not empty: %d", l.Len())
		}
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		var l Log
		for i := 0; i < 4; i++ {
			l.Append(Sample{CPUPercent: float64(i)})
		}
		all := l.All()
		for i, s := range all {
			if s.CPUPercent != float64(i) {
				t.Errorf("All()[%d].CPUPercent = %v, want %v", i, s.CPUPercent, i)
			}
		}
		if l.Len() != 4 {
			t.Errorf("Len() = %d, want 4", l.Len())
		}
	})

	t.Run("appending to view does not touch log", func(t *testing.T) {
		var l Log
		l.Append(Sample{Timestamp: "a"})
		l.Append(Sample{Timestamp: "b"})
		view := l.All()
		_ = append(view, Sample{Timestamp: "intruder"})
		l.Append(Sample{Timestamp: "c"})
		if got := l.All()[2].Timestamp; got != "c" {
			t.Errorf("third sample = %q, want %q", got, "c")
		}
		if l.Len() != 3 {
			t.Errorf("Len() = %d, want 3", l.Len())
		}
	})
}
