package timeouts

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	Reset()
	if got := Ping(); got != DefaultPing {
		t.Errorf("Ping() = %v, want %v", got, DefaultPing)
	}
	if got := Short(); got != DefaultShort {
		t.Errorf("Short() = %v, want %v", got, DefaultShort)
	}
	if got := Medium(); got != DefaultMedium {
		t.Errorf("Medium() = %v, want %v", got, DefaultMedium)
	}
	if got := Long(); got != DefaultLong {
		t.Errorf("Long() = %v, want %v", got, DefaultLong)
	}
}

func TestConfigure(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Configure(Config{Short: 9 * time.Second})
	if got := Short(); got != 9*time.Second {
		t.Errorf("Short() after Configure = %v, want 9s", got)
	}
	// Zero values leave the others untouched.
	if got := Medium(); got != DefaultMedium {
		t.Errorf("Medium() after partial Configure = %v, want %v", got, DefaultMedium)
	}
}

func TestConfigureIgnoresNonPositive(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Configure(Config{Long: -time.Second})
	if got := Long(); got != DefaultLong {
		t.Errorf("Long() = %v, want default %v", got, DefaultLong)
	}
}

func TestCurrent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Configure(Config{Ping: time.Second})
	cur := Current()
	if cur.Ping != time.Second || cur.Short != DefaultShort {
		t.Errorf("Current() = %+v", cur)
	}
}
