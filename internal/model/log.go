package model

// Log is the append-only, in-memory sequence of samples collected during one
// run. Insertion order is chronological order. There is no eviction, so the
// log grows for the lifetime of the process; the tool targets short
// interactive sessions.
//
// Log is not safe for concurrent use.
type Log struct {
	samples []Sample
}

// Append adds s to the end of the log.
func (l *Log) Append(s Sample) { l.samples = append(l.samples, s) }

// All returns the samples in insertion order. The returned slice is capped
// to its length so that an append by the caller reallocates instead of
// writing into the log's backing array. Callers must not modify elements.
func (l *Log) All() []Sample { return l.samples[:len(l.samples):len(l.samples)] }

// Len reports the number of samples.
func (l *Log) Len() int { return len(l.samples) }
