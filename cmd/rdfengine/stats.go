package main

import (
	"log/slog"

	"github.com/robfig/cron/v3"

	"rdf-graph-engine/base"
	"rdf-graph-engine/store"
)

// startStatsLogger schedules periodic store statistics logging, same
// "cron.New(); c.AddFunc(schedule, fn); c.Start()" shape as the teacher's
// startSyncProfiles, with a one-off log line when no schedule is set.
func startStatsLogger(s *store.Store) {
	logStats := func() {
		slog.Info("store stats",
			"triples", s.CountTriples(),
			"subjects", s.CountSubjects(),
			"predicates", s.CountPredicates(),
			"objects", s.CountObjects(),
		)
	}

	if base.Configuration.StatsSchedule == "" {
		logStats()
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(base.Configuration.StatsSchedule, logStats); err != nil {
		slog.Warn("failed scheduling stats logger", "error", err)
		return
	}
	c.Start()
	slog.Info("started scheduled stats logging", "cron", base.Configuration.StatsSchedule, "details", c.Entries())
}
