package timeouts

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	Reset()
	if got := Ping(); got != DefaultPing {
		t.Errorf("Ping: got %v, want %v", got, DefaultPing)
	}
	if got := Medium(); got != DefaultMedium {
		t.Errorf("Medium: got %v, want %v", got, DefaultMedium)
	}
}

func TestConfigure(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Configure(Config{Short: 8 * time.Second, Long: time.Minute})

	if got := Short(); got != 8*time.Second {
		t.Errorf("Short: got %v, want 8s", got)
	}
	if got := Long(); got != time.Minute {
		t.Errorf("Long: got %v, want 1m", got)
	}
	// Zero values keep the current settings.
	if got := Medium(); got != DefaultMedium {
		t.Errorf("Medium: got %v, want default %v", got, DefaultMedium)
	}
}
