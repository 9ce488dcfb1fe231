package corobus

// features controls which optional operation groups a Bus exposes.
type features struct {
	broadcast bool
	batch     bool
}

type busConfig struct {
	features    features
	maxChannels int
	logger      Logger
	metrics     MetricsCollector
}

func defaultBusConfig() busConfig {
	return busConfig{
		features: features{broadcast: true, batch: true},
		logger:   noopLogger{},
	}
}

// Option configures a Bus at construction time.
type Option func(*busConfig)

// WithoutBroadcast disables Broadcast/TryBroadcast. Calling them on such a
// Bus returns ErrFeatureDisabled and no storage is allocated for the
// broadcast waiter queue beyond its zero value.
func WithoutBroadcast() Option {
	return func(c *busConfig) { c.features.broadcast = false }
}

// WithoutBatch disables SendBatch/TrySendBatch/RecvBatch/TryRecvBatch.
// Calling them on such a Bus returns ErrFeatureDisabled.
func WithoutBatch() Option {
	return func(c *busConfig) { c.features.batch = false }
}

// WithMaxChannels caps the number of simultaneously open channels. Open
// suspends the calling coroutine (participating in the same wakeup
// discipline as a full channel) once the cap is reached, until a channel
// closes. n <= 0 means unbounded, the default.
func WithMaxChannels(n int) Option {
	return func(c *busConfig) {
		if n > 0 {
			c.maxChannels = n
		}
	}
}

// WithLogger sets the Logger used for bus lifecycle diagnostics. The
// default is a no-op logger.
func WithLogger(l Logger) Option {
	return func(c *busConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the MetricsCollector invoked after every completed
// point-to-point, batch and broadcast operation. The default is nil (no
// collection).
func WithMetrics(m MetricsCollector) Option {
	return func(c *busConfig) { c.metrics = m }
}
