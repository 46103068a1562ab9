package logger

import (
	"testing"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("Level = %s, want info", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("Format = %s, want console", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("Output = %s, want stdout", cfg.Output)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid json", Config{Level: "debug", Format: "json", Output: "stdout"}, false},
		{"valid console", Config{Level: "warn", Format: "console", Output: "stderr"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestFields_PairsAndOddKeys(t *testing.T) {
	m := Fields("group", "api", "count", 3)
	if m["group"] != "api" || m["count"] != 3 {
		t.Errorf("unexpected fields: %v", m)
	}

	// Trailing value without a key is dropped.
	m = Fields("only", 1, "dangling")
	if len(m) != 1 {
		t.Errorf("expected 1 field, got %v", m)
	}

	// Non-string keys are skipped.
	m = Fields(42, "value")
	if len(m) != 0 {
		t.Errorf("expected no fields, got %v", m)
	}
}

func TestLogger_ChildLoggersDoNotPanic(t *testing.T) {
	l := Nop()

	l.WithComponent("hystrix").Info("msg")
	l.WithFields(map[string]interface{}{"k": "v"}).Debug("msg")
	l.WithError(nil).Warn("msg")
	l.Error("msg", Fields("group", "g"))
}

func TestGlobalLogger_LazyDefault(t *testing.T) {
	SetGlobalLogger(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected lazily created global logger")
	}

	SetGlobalLogger(Nop())
	Info("quiet")
	Debug("quiet")
	Warn("quiet")
	Error("quiet")
	WithComponent("test").Info("quiet")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	l := New(Config{Level: "nonsense", Format: "json"})
	if l == nil {
		t.Fatal("expected logger despite invalid level")
	}
}
