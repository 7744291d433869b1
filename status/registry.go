// Package status collects session counters behind lock-free atomics.
// Producers cache metric pointers once at setup and write on the hot path
// without touching the registry again; the render status bar reads them.
package status

import "sync/atomic"

// Registry is the central metrics facade
type Registry struct {
	Bools *MetricMap[atomic.Bool]
	Ints  *MetricMap[atomic.Int64]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools: NewMetricMap[atomic.Bool](),
		Ints:  NewMetricMap[atomic.Int64](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count()
}
