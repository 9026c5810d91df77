package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered      uint64
	LoginSuccesses       uint64
	LoginFailures        uint64
	OrganizationsCreated uint64
	MembershipsAdded     uint64
	ProfileCacheHits     uint64
	ProfileCacheMisses   uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered      uint64
	loginSuccesses       uint64
	loginFailures        uint64
	organizationsCreated uint64
	membershipsAdded     uint64
	profileCacheHits     uint64
	profileCacheMisses   uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:      atomic.LoadUint64(&m.usersRegistered),
		LoginSuccesses:       atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:        atomic.LoadUint64(&m.loginFailures),
		OrganizationsCreated: atomic.LoadUint64(&m.organizationsCreated),
		MembershipsAdded:     atomic.LoadUint64(&m.membershipsAdded),
		ProfileCacheHits:     atomic.LoadUint64(&m.profileCacheHits),
		ProfileCacheMisses:   atomic.LoadUint64(&m.profileCacheMisses),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncOrganizationCreated increments the organisation counter.
func (m *InMemoryRecorder) IncOrganizationCreated() {
	atomic.AddUint64(&m.organizationsCreated, 1)
}

// IncMembershipAdded increments the membership counter.
func (m *InMemoryRecorder) IncMembershipAdded() {
	atomic.AddUint64(&m.membershipsAdded, 1)
}

// IncProfileCacheHit increments the profile cache hit counter.
func (m *InMemoryRecorder) IncProfileCacheHit() {
	atomic.AddUint64(&m.profileCacheHits, 1)
}

// IncProfileCacheMiss increments the profile cache miss counter.
func (m *InMemoryRecorder) IncProfileCacheMiss() {
	atomic.AddUint64(&m.profileCacheMisses, 1)
}
