package hystrix

import (
	"testing"
	"time"
)

func TestSettings_ApplyDefaults(t *testing.T) {
	var s Settings
	s.ApplyDefaults()

	if s.CoreSize != DefaultCoreSize {
		t.Errorf("CoreSize = %d, want %d", s.CoreSize, DefaultCoreSize)
	}
	if s.MaxQueueSize != DefaultMaxQueueSize {
		t.Errorf("MaxQueueSize = %d, want %d", s.MaxQueueSize, DefaultMaxQueueSize)
	}
	if s.ExecutionTimeout != DefaultExecutionTimeout {
		t.Errorf("ExecutionTimeout = %s, want %s", s.ExecutionTimeout, DefaultExecutionTimeout)
	}
	if s.RequestVolumeThreshold != DefaultRequestVolumeThreshold {
		t.Errorf("RequestVolumeThreshold = %d, want %d", s.RequestVolumeThreshold, DefaultRequestVolumeThreshold)
	}
	if s.ErrorThresholdPercentage != DefaultErrorThresholdPercentage {
		t.Errorf("ErrorThresholdPercentage = %d, want %d", s.ErrorThresholdPercentage, DefaultErrorThresholdPercentage)
	}
	if s.SleepWindow != DefaultSleepWindow {
		t.Errorf("SleepWindow = %s, want %s", s.SleepWindow, DefaultSleepWindow)
	}
	if s.WindowBuckets != DefaultWindowBuckets {
		t.Errorf("WindowBuckets = %d, want %d", s.WindowBuckets, DefaultWindowBuckets)
	}
	if s.BucketDuration != DefaultBucketDuration {
		t.Errorf("BucketDuration = %s, want %s", s.BucketDuration, DefaultBucketDuration)
	}
	if s.DisableCircuitBreaker {
		t.Error("breaker should be enabled by default")
	}
}

func TestSettings_DefaultsPreserveExplicitValues(t *testing.T) {
	s := Settings{
		CoreSize:         3,
		MaxQueueSize:     5,
		ExecutionTimeout: 250 * time.Millisecond,
	}
	s.ApplyDefaults()

	if s.CoreSize != 3 || s.MaxQueueSize != 5 || s.ExecutionTimeout != 250*time.Millisecond {
		t.Errorf("defaults overwrote explicit values: %+v", s)
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults are valid", func(s *Settings) {}, false},
		{"zero core size", func(s *Settings) { s.CoreSize = 0 }, true},
		{"threshold above 100", func(s *Settings) { s.ErrorThresholdPercentage = 101 }, true},
		{"zero buckets", func(s *Settings) { s.WindowBuckets = 0 }, true},
		{"zero bucket duration", func(s *Settings) { s.BucketDuration = 0 }, true},
		{"rejection threshold above queue size", func(s *Settings) {
			s.MaxQueueSize = 2
			s.QueueRejectionThreshold = 3
		}, true},
		{"rejection threshold within queue size", func(s *Settings) {
			s.MaxQueueSize = 5
			s.QueueRejectionThreshold = 3
		}, false},
	}

	for _, tt := range tests {
		s := DefaultSettings()
		tt.mutate(&s)
		err := s.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestSettings_QueueLimit(t *testing.T) {
	tests := []struct {
		name      string
		queueSize int
		threshold int
		want      int
	}{
		{"queueing disabled by sentinel", -1, 5, 0},
		{"queueing disabled by zero after defaults", -1, 0, 0},
		{"threshold caps queue", 10, 4, 4},
		{"queue size caps threshold", 3, 9, 3},
		{"no threshold uses queue size", 6, 0, 6},
	}

	for _, tt := range tests {
		s := Settings{MaxQueueSize: tt.queueSize, QueueRejectionThreshold: tt.threshold}
		if got := s.queueLimit(); got != tt.want {
			t.Errorf("%s: queueLimit() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
