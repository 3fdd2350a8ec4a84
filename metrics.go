// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

import "github.com/prometheus/client_golang/prometheus"

// Collector exposes a Manager's unique-table sizes and operation-cache
// hit/miss counters as Prometheus metrics, generalizing the teacher's plain
// cacheStat counters (cache.go) into scrapeable gauges. Each Manager should
// register its own Collector; the uuid label keeps several Managers in one
// process from colliding on the same series.
type Collector[V Value[V]] struct {
	m *Manager[V]

	uniqueSize *prometheus.Desc
	cacheSize  *prometheus.Desc
	cacheHits  *prometheus.Desc
}

// NewCollector builds a Collector for m.
func NewCollector[V Value[V]](m *Manager[V]) *Collector[V] {
	return &Collector[V]{
		m: m,
		uniqueSize: prometheus.NewDesc(
			"sdd_unique_table_entries",
			"Number of distinct entries currently interned.",
			[]string{"manager", "table"}, nil,
		),
		cacheSize: prometheus.NewDesc(
			"sdd_operation_cache_entries",
			"Number of entries currently held in an operation cache.",
			[]string{"manager", "cache"}, nil,
		),
		cacheHits: prometheus.NewDesc(
			"sdd_operation_cache_lookups_total",
			"Operation cache lookups, partitioned by outcome.",
			[]string{"manager", "cache", "outcome"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector[V]) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.uniqueSize
	ch <- c.cacheSize
	ch <- c.cacheHits
}

// Collect implements prometheus.Collector.
func (c *Collector[V]) Collect(ch chan<- prometheus.Metric) {
	id := c.m.id.String()

	tables := []struct {
		name string
		size int
	}{
		{"values", c.m.valuesTable.len()},
		{"env", c.m.envTable.len()},
		{"sdd", c.m.sddTable.len()},
	}
	for _, t := range tables {
		ch <- prometheus.MustNewConstMetric(c.uniqueSize, prometheus.GaugeValue, float64(t.size), id, t.name)
	}

	caches := []struct {
		name string
		c    *opCache[V]
	}{
		{"union", c.m.unionCache},
		{"intersection", c.m.intersectionCache},
		{"difference", c.m.differenceCache},
	}
	for _, c2 := range caches {
		ch <- prometheus.MustNewConstMetric(c.cacheSize, prometheus.GaugeValue, float64(c2.c.len()), id, c2.name)
		ch <- prometheus.MustNewConstMetric(c.cacheHits, prometheus.CounterValue, float64(c2.c.hits), id, c2.name, "hit")
		ch <- prometheus.MustNewConstMetric(c.cacheHits, prometheus.CounterValue, float64(c2.c.misses), id, c2.name, "miss")
	}
	ch <- prometheus.MustNewConstMetric(c.cacheSize, prometheus.GaugeValue, float64(len(c.m.arcCache.entries)), id, "arcview")
	ch <- prometheus.MustNewConstMetric(c.cacheHits, prometheus.CounterValue, float64(c.m.arcCache.hits), id, "arcview", "hit")
	ch <- prometheus.MustNewConstMetric(c.cacheHits, prometheus.CounterValue, float64(c.m.arcCache.misses), id, "arcview", "miss")
}
