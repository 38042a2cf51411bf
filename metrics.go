package pq

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsPrefix = "pq_"

// Collector exposes the Stats of one queue as prometheus metrics,
// const-labelled with the queue name. It reads only the atomic counters,
// so collecting is safe while the queue is in use by its owner.
type Collector struct {
	stats *Stats

	length   *prometheus.Desc
	capacity *prometheus.Desc
	pushes   *prometheus.Desc
	pops     *prometheus.Desc
	misses   *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector[T any](h *Heap[T], queue string) *Collector {
	constLabels := prometheus.Labels{"queue": queue}

	return &Collector{
		stats: h.Stats(),

		length: prometheus.NewDesc(
			metricsPrefix+"queue_length",
			"The number of elements currently stored in the queue.",
			nil, constLabels,
		),

		capacity: prometheus.NewDesc(
			metricsPrefix+"queue_capacity",
			"The capacity of the queue's backing storage.",
			nil, constLabels,
		),

		pushes: prometheus.NewDesc(
			metricsPrefix+"push_total",
			"The total number of elements pushed onto the queue.",
			nil, constLabels,
		),

		pops: prometheus.NewDesc(
			metricsPrefix+"pop_total",
			"The total number of elements popped off the queue.",
			nil, constLabels,
		),

		misses: prometheus.NewDesc(
			metricsPrefix+"empty_access_total",
			"The total number of Peek and Pop calls made on an empty queue.",
			nil, constLabels,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.length
	ch <- c.capacity
	ch <- c.pushes
	ch <- c.pops
	ch <- c.misses
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.length, prometheus.GaugeValue, float64(c.stats.length.Load()))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(c.stats.capacity.Load()))
	ch <- prometheus.MustNewConstMetric(c.pushes, prometheus.CounterValue, float64(c.stats.pushes.Load()))
	ch <- prometheus.MustNewConstMetric(c.pops, prometheus.CounterValue, float64(c.stats.pops.Load()))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(c.stats.misses.Load()))
}
