package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncLoginSuccess is a no-op.
func (n *NoopRecorder) IncLoginSuccess() {}

// IncLoginFailure is a no-op.
func (n *NoopRecorder) IncLoginFailure() {}

// IncOrganizationCreated is a no-op.
func (n *NoopRecorder) IncOrganizationCreated() {}

// IncMembershipAdded is a no-op.
func (n *NoopRecorder) IncMembershipAdded() {}

// IncProfileCacheHit is a no-op.
func (n *NoopRecorder) IncProfileCacheHit() {}

// IncProfileCacheMiss is a no-op.
func (n *NoopRecorder) IncProfileCacheMiss() {}
