package fixedbuf

import (
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"
)

// BufferMetrics contains statistical information about a buffer.
type BufferMetrics struct {
	Len         int     // Initialized slots
	Cap         int     // Reserved slots
	ElemSize    int     // Bytes per slot
	SizeInUse   int     // Bytes held by initialized slots
	Capacity    int     // Bytes reserved for the region
	Utilization float64 // Len / Cap (0.0-1.0), 0 for a zero-capacity buffer
}

// Metrics returns a snapshot of buffer statistics.
func (b *Buffer[T]) Metrics() BufferMetrics {
	var zero T
	elem := int(unsafe.Sizeof(zero))
	m := BufferMetrics{
		Len:       b.Len(),
		Cap:       b.Cap(),
		ElemSize:  elem,
		SizeInUse: b.Len() * elem,
		Capacity:  b.Cap() * elem,
	}
	if m.Cap > 0 {
		m.Utilization = float64(m.Len) / float64(m.Cap)
	}
	return m
}

// Stats counts regions across every buffer in the process.
type Stats struct {
	Allocated int64 // Regions reserved by New
	Released  int64 // Regions handed back by Release or the GC hook
	Live      int64 // Allocated - Released
	LiveBytes int64 // Bytes held by live regions
}

// RegionStats returns the process-wide region counters.
func RegionStats() Stats {
	released := regionCounters.released.Load()
	allocated := regionCounters.allocated.Load()
	return Stats{
		Allocated: allocated,
		Released:  released,
		Live:      allocated - released,
		LiveBytes: regionCounters.liveBytes.Load(),
	}
}

// MetricsSource is anything that can report BufferMetrics.
type MetricsSource interface {
	Metrics() BufferMetrics
}

// Collector exports one buffer's metrics to Prometheus.
// Collect runs on the scrape goroutine, so src must be safe for concurrent
// use; pass a *SafeBuffer unless the buffer is no longer mutated.
type Collector struct {
	src MetricsSource

	length      *prometheus.Desc
	capacity    *prometheus.Desc
	bytesInUse  *prometheus.Desc
	utilization *prometheus.Desc
}

// NewCollector returns a Collector for src. constLabels tell buffers apart
// when several are registered.
func NewCollector(namespace string, src MetricsSource, constLabels prometheus.Labels) *Collector {
	fq := func(name string) string {
		return prometheus.BuildFQName(namespace, "fixedbuf", name)
	}
	return &Collector{
		src:         src,
		length:      prometheus.NewDesc(fq("length"), "Initialized slots.", nil, constLabels),
		capacity:    prometheus.NewDesc(fq("capacity"), "Reserved slots.", nil, constLabels),
		bytesInUse:  prometheus.NewDesc(fq("bytes_in_use"), "Bytes held by initialized slots.", nil, constLabels),
		utilization: prometheus.NewDesc(fq("utilization_ratio"), "Initialized slots over reserved slots.", nil, constLabels),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.length
	ch <- c.capacity
	ch <- c.bytesInUse
	ch <- c.utilization
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.src.Metrics()
	ch <- prometheus.MustNewConstMetric(c.length, prometheus.GaugeValue, float64(m.Len))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(m.Cap))
	ch <- prometheus.MustNewConstMetric(c.bytesInUse, prometheus.GaugeValue, float64(m.SizeInUse))
	ch <- prometheus.MustNewConstMetric(c.utilization, prometheus.GaugeValue, m.Utilization)
}

// RegionCollector exports RegionStats to Prometheus.
type RegionCollector struct {
	allocated *prometheus.Desc
	released  *prometheus.Desc
	liveBytes *prometheus.Desc
}

// NewRegionCollector returns a collector for the process-wide region counters.
func NewRegionCollector(namespace string) *RegionCollector {
	return &RegionCollector{
		allocated: prometheus.NewDesc(prometheus.BuildFQName(namespace, "fixedbuf", "regions_allocated_total"),
			"Regions reserved by New.", nil, nil),
		released: prometheus.NewDesc(prometheus.BuildFQName(namespace, "fixedbuf", "regions_released_total"),
			"Regions handed back.", nil, nil),
		liveBytes: prometheus.NewDesc(prometheus.BuildFQName(namespace, "fixedbuf", "live_bytes"),
			"Bytes held by live regions.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *RegionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.allocated
	ch <- c.released
	ch <- c.liveBytes
}

// Collect implements prometheus.Collector.
func (c *RegionCollector) Collect(ch chan<- prometheus.Metric) {
	s := RegionStats()
	ch <- prometheus.MustNewConstMetric(c.allocated, prometheus.CounterValue, float64(s.Allocated))
	ch <- prometheus.MustNewConstMetric(c.released, prometheus.CounterValue, float64(s.Released))
	ch <- prometheus.MustNewConstMetric(c.liveBytes, prometheus.GaugeValue, float64(s.LiveBytes))
}
