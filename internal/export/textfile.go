package export

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Dicklesworthstone/sysmonlog/internal/model"
)

const namespace = "sysmonlog"

// Textfile writes the most recent sample as Prometheus gauges in the text
// exposition format, for pickup by node_exporter's textfile collector.
type Textfile struct {
	Path string
}

func (t Textfile) Format() string      { return "prometheus textfile" }
func (t Textfile) Destination() string { return t.Path }

func (t Textfile) Export(samples []model.Sample) error {
	reg := prometheus.NewRegistry()
	count := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "samples",
		Help:      "Number of samples collected in this run.",
	})
	count.Set(float64(len(samples)))
	reg.MustRegister(count)

	if n := len(samples); n > 0 {
		registerLatest(reg, samples[n-1])
	}
	return wrap(t.Format(), t.Path, prometheus.WriteToTextfile(t.Path, reg))
}

func registerLatest(reg *prometheus.Registry, s model.Sample) {
	gauge := func(name, help string, v float64) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
		g.Set(v)
		reg.MustRegister(g)
	}
	gauge("cpu_usage_percent", "Host CPU usage over the measurement window.", s.CPUPercent)
	gauge("ram_usage_percent", "Host memory usage.", s.RAMPercent)
	gauge("disk_usage_percent", "Usage of the measured filesystem.", s.DiskPercent)
	gauge("network_sent_megabytes", "Bytes sent since boot, in MiB.", s.NetSentMB)
	gauge("network_received_megabytes", "Bytes received since boot, in MiB.", s.NetRecvMB)

	if ts, err := time.ParseInLocation(model.TimestampLayout, s.Timestamp, time.Local); err == nil {
		gauge("last_sample_timestamp_seconds", "Unix time of the latest sample.", float64(ts.Unix()))
	}

	top := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "top_process_info",
		Help:      "Top consumer per resource in the latest sample.",
	}, []string{"resource", "process"})
	top.WithLabelValues("cpu", strings.ToValidUTF8(s.TopCPU, "?")).Set(1)
	top.WithLabelValues("ram", strings.ToValidUTF8(s.TopRAM, "?")).Set(1)
	reg.MustRegister(top)
}
