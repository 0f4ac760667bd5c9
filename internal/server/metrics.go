package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/resmon/internal/monitor"
)

const namespace = "resmon"

// Metrics holds the server's Prometheus collectors. Each Metrics owns a
// private registry, so several instances can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestsTotal   *prometheus.CounterVec
	activeRequests  prometheus.Gauge
	requestDuration *prometheus.HistogramVec

	cpuUsage      *prometheus.GaugeVec
	cpuFrequency  *prometheus.GaugeVec
	memUsed       prometheus.Gauge
	memTotal      prometheus.Gauge
	diskRead      prometheus.Gauge
	diskWritten   prometheus.Gauge
	netReceive    prometheus.Gauge
	netTransmit   prometheus.Gauge
	gpuUsage      *prometheus.GaugeVec
	gpuMemUsed    *prometheus.GaugeVec
	gpuTemp       *prometheus.GaugeVec
	processes     prometheus.Gauge
	uptime        prometheus.Gauge
	historyLength prometheus.Gauge
}

func gauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
}

func gaugeVec(name, help, label string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help}, []string{label})
}

// NewMetrics creates and registers all collectors, including the Go runtime
// and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total HTTP requests by path and status code.",
		}, []string{"path", "code"}),
		activeRequests: gauge("active_requests", "HTTP requests currently being served."),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),

		cpuUsage:      gaugeVec("cpu_usage_percent", "Usage of each logical core in percent.", "core"),
		cpuFrequency:  gaugeVec("cpu_frequency_mhz", "Current frequency of each logical core.", "core"),
		memUsed:       gauge("memory_used_bytes", "Used physical memory."),
		memTotal:      gauge("memory_total_bytes", "Total physical memory."),
		diskRead:      gauge("disk_read_bytes", "Cumulative bytes read by visible processes."),
		diskWritten:   gauge("disk_written_bytes", "Cumulative bytes written by visible processes."),
		netReceive:    gauge("network_receive_bytes_per_second", "Inbound throughput over all interfaces."),
		netTransmit:   gauge("network_transmit_bytes_per_second", "Outbound throughput over all interfaces."),
		gpuUsage:      gaugeVec("gpu_usage_percent", "GPU utilization in percent.", "gpu"),
		gpuMemUsed:    gaugeVec("gpu_memory_used_bytes", "GPU memory in use.", "gpu"),
		gpuTemp:       gaugeVec("gpu_temperature_celsius", "GPU temperature.", "gpu"),
		processes:     gauge("processes", "Number of running processes."),
		uptime:        gauge("uptime_seconds", "Host uptime."),
		historyLength: gauge("history_length", "Snapshots currently retained."),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal, m.activeRequests, m.requestDuration,
		m.cpuUsage, m.cpuFrequency, m.memUsed, m.memTotal,
		m.diskRead, m.diskWritten, m.netReceive, m.netTransmit,
		m.gpuUsage, m.gpuMemUsed, m.gpuTemp,
		m.processes, m.uptime, m.historyLength,
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks a request as started.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest records a completed request.
func (m *Metrics) ObserveRequest(path string, code int, d time.Duration) {
	m.requestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(path).Observe(d.Seconds())
}

// ObserveSnapshot publishes s through the snapshot gauges. Per-core and
// per-GPU series are replaced wholesale.
func (m *Metrics) ObserveSnapshot(s monitor.Snapshot) {
	m.cpuUsage.Reset()
	m.cpuFrequency.Reset()
	for i, c := range s.CPUs {
		core := strconv.Itoa(i)
		m.cpuUsage.WithLabelValues(core).Set(float64(c.Usage))
		m.cpuFrequency.WithLabelValues(core).Set(float64(c.Freq))
	}
	m.memUsed.Set(float64(s.Mem))
	m.memTotal.Set(float64(s.MemMax))
	m.diskRead.Set(float64(s.Disk.ReadBytes))
	m.diskWritten.Set(float64(s.Disk.WrittenBytes))
	m.netReceive.Set(float64(s.Network.Down))
	m.netTransmit.Set(float64(s.Network.Up))

	m.gpuUsage.Reset()
	m.gpuMemUsed.Reset()
	m.gpuTemp.Reset()
	for i, g := range s.GPUs {
		gpu := strconv.Itoa(i)
		m.gpuUsage.WithLabelValues(gpu).Set(float64(g.Usage))
		m.gpuMemUsed.WithLabelValues(gpu).Set(float64(g.Mem))
		m.gpuTemp.WithLabelValues(gpu).Set(float64(g.Temp))
	}
	m.processes.Set(float64(s.Processes))
	m.uptime.Set(float64(s.UpTime))
}

// SetHistoryLength publishes the number of retained snapshots.
func (m *Metrics) SetHistoryLength(n int) { m.historyLength.Set(float64(n)) }

// WritePrometheus serves the registry in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
