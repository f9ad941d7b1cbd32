package component

// RunStats is the singleton tally for the current run.
type RunStats struct {
	Kills      int
	Loot       int
	LootGoal   int
	Wave       int
	PortalOpen bool
	PlayerDead bool
	// EnemiesPerWave is the batch size of the first wave.
	EnemiesPerWave int
}

var RunStatsComponent = NewComponent[RunStats]()
