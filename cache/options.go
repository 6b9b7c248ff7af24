package cache

// Clock provides the monotonic-ish timestamp source used to stamp
// Entry.last_accessed. The real clock is used by default; tests inject a
// fake one for deterministic access-time assertions, the same pattern
// the teacher's Options.Clock / fakeClock pair uses.
type Clock interface {
	NowUnixNano() int64
}

// Config configures a Cache at construction.
type Config struct {
	// Capacity is the maximum number of live entries. Must be > 0.
	Capacity int

	// SnapshotPath, if non-empty, is the file New loads from (best-effort,
	// non-fatal on failure) and Close saves to on teardown (logged,
	// non-fatal on failure).
	SnapshotPath string

	// Observer, if non-nil, receives the same counter events as the
	// façade's own mandatory metrics, for export to an external system
	// (e.g. Prometheus via metrics/prom). Defaults to a no-op.
	Observer Observer

	// Clock overrides the timestamp source. Nil uses the real clock.
	Clock Clock
}
