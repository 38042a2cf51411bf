package utils

import "sync"

// Avg keeps a running arithmetic mean of the observed values. Safe for
// concurrent use.
type Avg struct {
	v     float64
	count int
	lock  sync.Mutex
}

func (a *Avg) Add(val float64) {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.v = (float64(a.count)*a.v + val) / float64(a.count+1)
	a.count++
}

// Val returns the current mean, zero if nothing was observed yet.
func (a *Avg) Val() float64 {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.v
}

func (a *Avg) Count() int {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.count
}
