package hystrix

import (
	"fmt"
	"time"
)

// Default settings applied to any group field left unset.
const (
	DefaultCoreSize                 = 10
	DefaultMaxQueueSize             = -1 // queueing disabled
	DefaultExecutionTimeout         = 1000 * time.Millisecond
	DefaultRequestVolumeThreshold   = 20
	DefaultErrorThresholdPercentage = 50
	DefaultSleepWindow              = 5000 * time.Millisecond
	DefaultWindowBuckets            = 10
	DefaultBucketDuration           = time.Second
)

// Settings configures one dependency group: its execution pool, its circuit
// breaker, and the rolling window feeding the breaker's decisions. A group's
// settings are fixed once the group has executed its first command.
type Settings struct {
	// CoreSize is the number of worker slots in the group's pool.
	CoreSize int `yaml:"core_size" mapstructure:"core_size" validate:"omitempty,min=1"`
	// MaxQueueSize is the queue capacity in front of the pool. A value <= 0
	// disables queueing: past CoreSize, calls are rejected immediately.
	MaxQueueSize int `yaml:"max_queue_size" mapstructure:"max_queue_size"`
	// QueueRejectionThreshold caps the queue length at which new calls are
	// rejected. Only meaningful when queueing is enabled; values <= 0 fall
	// back to MaxQueueSize.
	QueueRejectionThreshold int `yaml:"queue_rejection_threshold" mapstructure:"queue_rejection_threshold"`
	// ExecutionTimeout bounds queue wait plus execution for a single command.
	ExecutionTimeout time.Duration `yaml:"execution_timeout" mapstructure:"execution_timeout"`
	// DisableCircuitBreaker bypasses breaker admission for this group.
	// The rolling window is still maintained for visibility.
	DisableCircuitBreaker bool `yaml:"disable_circuit_breaker" mapstructure:"disable_circuit_breaker"`
	// RequestVolumeThreshold is the minimum request volume in the rolling
	// window before the breaker may open. Below it the breaker never trips.
	RequestVolumeThreshold int `yaml:"request_volume_threshold" mapstructure:"request_volume_threshold"`
	// ErrorThresholdPercentage is the failure percentage (0-100) at or above
	// which the breaker opens, once the volume threshold is met.
	ErrorThresholdPercentage int `yaml:"error_threshold_percentage" mapstructure:"error_threshold_percentage" validate:"omitempty,min=1,max=100"`
	// SleepWindow is how long an open breaker waits before allowing a trial.
	SleepWindow time.Duration `yaml:"sleep_window" mapstructure:"sleep_window"`
	// WindowBuckets is the number of time buckets in the rolling window.
	WindowBuckets int `yaml:"window_buckets" mapstructure:"window_buckets" validate:"omitempty,min=1"`
	// BucketDuration is the width of a single rolling-window bucket.
	BucketDuration time.Duration `yaml:"bucket_duration" mapstructure:"bucket_duration"`
}

// DefaultSettings returns the settings used for groups that were never
// explicitly configured.
func DefaultSettings() Settings {
	var s Settings
	s.ApplyDefaults()
	return s
}

// ApplyDefaults fills unset fields with their default values.
func (s *Settings) ApplyDefaults() {
	if s.CoreSize <= 0 {
		s.CoreSize = DefaultCoreSize
	}
	if s.MaxQueueSize == 0 {
		s.MaxQueueSize = DefaultMaxQueueSize
	}
	if s.ExecutionTimeout <= 0 {
		s.ExecutionTimeout = DefaultExecutionTimeout
	}
	if s.RequestVolumeThreshold <= 0 {
		s.RequestVolumeThreshold = DefaultRequestVolumeThreshold
	}
	if s.ErrorThresholdPercentage <= 0 {
		s.ErrorThresholdPercentage = DefaultErrorThresholdPercentage
	}
	if s.SleepWindow <= 0 {
		s.SleepWindow = DefaultSleepWindow
	}
	if s.WindowBuckets <= 0 {
		s.WindowBuckets = DefaultWindowBuckets
	}
	if s.BucketDuration <= 0 {
		s.BucketDuration = DefaultBucketDuration
	}
}

// Validate checks settings for internal consistency. It expects defaults to
// have been applied already.
func (s *Settings) Validate() error {
	if s.CoreSize <= 0 {
		return fmt.Errorf("core_size must be positive (got: %d)", s.CoreSize)
	}
	if s.ErrorThresholdPercentage < 1 || s.ErrorThresholdPercentage > 100 {
		return fmt.Errorf("error_threshold_percentage must be in [1,100] (got: %d)", s.ErrorThresholdPercentage)
	}
	if s.WindowBuckets <= 0 {
		return fmt.Errorf("window_buckets must be positive (got: %d)", s.WindowBuckets)
	}
	if s.BucketDuration <= 0 {
		return fmt.Errorf("bucket_duration must be positive (got: %s)", s.BucketDuration)
	}
	if s.QueueRejectionThreshold > 0 && s.MaxQueueSize > 0 && s.QueueRejectionThreshold > s.MaxQueueSize {
		return fmt.Errorf("queue_rejection_threshold (%d) exceeds max_queue_size (%d)",
			s.QueueRejectionThreshold, s.MaxQueueSize)
	}
	return nil
}

// queueLimit resolves the effective queue length at which submissions are
// rejected. Zero means queueing is disabled.
func (s *Settings) queueLimit() int {
	if s.MaxQueueSize <= 0 {
		return 0
	}
	if s.QueueRejectionThreshold > 0 && s.QueueRejectionThreshold < s.MaxQueueSize {
		return s.QueueRejectionThreshold
	}
	return s.MaxQueueSize
}
