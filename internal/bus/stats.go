package bus

import "sync/atomic"

// Stats counts events across publisher and workers.
type Stats struct {
	published atomic.Int64
	processed atomic.Int64
	failed    atomic.Int64
}

func (s *Stats) Published() int64 { return s.published.Load() }
func (s *Stats) Processed() int64 { return s.processed.Load() }
func (s *Stats) Failed() int64 { return s.failed.Load() }
