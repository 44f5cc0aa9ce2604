package dedup

// Stats tracks run counters. Fields are updated with atomic adds while
// workers are in flight.
type Stats struct {
	Files      int64 // files examined
	Sets       int64 // duplicate sets found
	Removed    int64 // replicas removed, or would-remove in dry-run
	Skipped    int64 // sets the policy left untouched
	Failed     int64 // failed lookups, selections and removals
	SavedBytes int64 // bytes reclaimed, or would-reclaim in dry-run
}
