package export

import (
	"encoding/json"
	"io"

	"github.com/Dicklesworthstone/sysmonlog/internal/model"
)

// jsonRecord mirrors model.Columns; field order is the key order on disk.
type jsonRecord struct {
	Timestamp string  `json:"Timestamp"`
	CPU       float64 `json:"CPU Usage (%)"`
	RAM       float64 `json:"RAM Usage (%)"`
	Disk      float64 `json:"Disk Usage (%)"`
	NetSent   float64 `json:"Network Sent (MB)"`
	NetRecv   float64 `json:"Network Received (MB)"`
	TopCPU    string  `json:"Top CPU Process"`
	TopRAM    string  `json:"Top RAM Process"`
}

// JSON writes the log as a single array of objects indented by four spaces.
// An empty log is written as [].
type JSON struct {
	Path string
}

func (j JSON) Format() string      { return "json" }
func (j JSON) Destination() string { return j.Path }

func (j JSON) Export(samples []model.Sample) error {
	records := make([]jsonRecord, 0, len(samples))
	for _, s := range samples {
		records = append(records, jsonRecord{
			Timestamp: s.Timestamp,
			CPU:       s.CPUPercent,
			RAM:       s.RAMPercent,
			Disk:      s.DiskPercent,
			NetSent:   s.NetSentMB,
			NetRecv:   s.NetRecvMB,
			TopCPU:    s.TopCPU,
			TopRAM:    s.TopRAM,
		})
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return wrap(j.Format(), j.Path, err)
	}
	err = writeAtomic(j.Path, func(w io.Writer) error {
		if _, err := w.Write(data); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	})
	return wrap(j.Format(), j.Path, err)
}
