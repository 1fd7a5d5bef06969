package application

import "expvar"

// Counters published under "growth_partner" on /debug/vars.
var stats = expvar.NewMap("growth_partner")

const (
	statUsersCreated         = "users_created"
	statGoalsCreated         = "goals_created"
	statGoalsUpdated         = "goals_updated"
	statGoalsDeleted         = "goals_deleted"
	statNotificationsQueued  = "notifications_queued"
	statSideEffectFailures   = "side_effect_failures"
	statSnapshotsSynced      = "snapshots_synced"
	statSnapshotSyncFailures = "snapshot_sync_failures"
)

func count(name string) { stats.Add(name, 1) }
