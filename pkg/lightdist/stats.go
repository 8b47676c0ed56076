package lightdist

import (
	"sync/atomic"

	"github.com/golang/glog"
)

// Stats counts strategy activity. All fields are updated atomically, so
// concurrent lookups need no coordination.
type Stats struct {
	lookups            atomic.Int64
	distributionsBuilt atomic.Int64
	hashProbes         atomic.Int64
}

// StatsSnapshot is a point-in-time copy of the counters
type StatsSnapshot struct {
	Lookups            int64 `json:"lookups"`
	DistributionsBuilt int64 `json:"distributionsBuilt"`
	HashProbes         int64 `json:"hashProbes"`
}

// Snapshot returns the current counter values
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Lookups:            s.lookups.Load(),
		DistributionsBuilt: s.distributionsBuilt.Load(),
		HashProbes:         s.hashProbes.Load(),
	}
}

// StatsReporter is implemented by strategies that track lookup counters
type StatsReporter interface {
	Stats() StatsSnapshot
}

// LogStats writes a strategy's counters through glog, typically at teardown
func LogStats(ld LightDistribution) {
	reporter, ok := ld.(StatsReporter)
	if !ok {
		return
	}
	s := reporter.Stats()
	glog.Infof("%s light distribution: %d lookups, %d distributions built, %d hash probes",
		ld.Name(), s.Lookups, s.DistributionsBuilt, s.HashProbes)
}
