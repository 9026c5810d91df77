// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Authentication metrics
	IncUserRegistered()
	IncLoginSuccess()
	IncLoginFailure()

	// Organisation metrics
	IncOrganizationCreated()
	IncMembershipAdded()

	// Read-path cache metrics
	IncProfileCacheHit()
	IncProfileCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
