package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var PoolsRebuiltCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "league_pools_rebuilt_total",
		Help: "Number of pool rebuilds across all divisions",
	},
)

var MatchesScheduledCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "league_matches_scheduled_total",
		Help: "Number of pool matches written by the scheduler",
	},
)

var ScheduleBuildDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "league_schedule_build_duration_s",
	Help: "Duration of the last schedule build per tournament",
}, []string{"tournament"})
