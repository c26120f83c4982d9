package shared

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLogger(t *testing.T) {
	t.Run("SetLogLevel", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&buf)

		if err := SetLogLevel(l, "warn"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if l.GetLevel() != log.WarnLevel {
			t.Errorf("expected warn level, got %v", l.GetLevel())
		}

		l.Info("hidden")
		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel Rejects Unknown", func(t *testing.T) {
		l := NewLogger(&bytes.Buffer{})
		if err := SetLogLevel(l, "chatty"); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		l := WithLogger(NewLogger(&buf), "component", "test")
		l.Info("hello")
		if !strings.Contains(buf.String(), "component=test") {
			t.Errorf("expected key/value in output, got %q", buf.String())
		}
	})
}

func TestIDs(t *testing.T) {
	if id := GenerateID(); len(id) != 36 {
		t.Errorf("expected 36 character uuid, got %q", id)
	}
	a, b := ShortID(), ShortID()
	if len(a) != 8 || a == b {
		t.Errorf("expected distinct 8 character ids, got %q and %q", a, b)
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]int{"a": 1}

	compact, err := MarshalJSON(data, false)
	if err != nil || string(compact) != `{"a":1}` {
		t.Errorf("unexpected compact output %q (%v)", compact, err)
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil || string(pretty) != "{\n  \"a\": 1\n}" {
		t.Errorf("unexpected pretty output %q (%v)", pretty, err)
	}

	if _, err := MarshalJSON(make(chan int), false); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestDates(t *testing.T) {
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	t.Run("Today", func(t *testing.T) {
		if got := Today(now); got != "2024-05-01" {
			t.Errorf("expected 2024-05-01, got %s", got)
		}
	})

	t.Run("DaysUntil", func(t *testing.T) {
		tt := []struct {
			date string
			want int
		}{
			{"2024-05-01", 0},
			{"2024-05-02", 1},
			{"2024-04-30", -1},
			{"2024-06-01", 31},
		}
		for _, tc := range tt {
			got, err := DaysUntil(tc.date, now)
			if err != nil {
				t.Fatalf("unexpected error for %s: %v", tc.date, err)
			}
			if got != tc.want {
				t.Errorf("DaysUntil(%s) = %d, want %d", tc.date, got, tc.want)
			}
		}

		if _, err := DaysUntil("soon", now); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("RelativeDate", func(t *testing.T) {
		tt := []struct {
			date string
			want string
		}{
			{"2024-04-20", "Past"},
			{"2024-05-01", "Today"},
			{"2024-05-02", "Tomorrow"},
			{"2024-05-04", "In 3 days"},
			{"2024-05-15", "In 2 weeks"},
			{"2024-07-05", "In 2 months"},
			{"TBD", "TBD"},
		}
		for _, tc := range tt {
			if got := RelativeDate(tc.date, now); got != tc.want {
				t.Errorf("RelativeDate(%s) = %q, want %q", tc.date, got, tc.want)
			}
		}
	})

	t.Run("IsPastDate", func(t *testing.T) {
		if !IsPastDate("2024-04-30", now) {
			t.Error("expected 2024-04-30 to be past")
		}
		if IsPastDate("2024-05-01", now) {
			t.Error("expected today to not be past")
		}
		if IsPastDate("garbage", now) {
			t.Error("expected unparseable dates to not be past")
		}
	})

	t.Run("Truncate", func(t *testing.T) {
		if got := Truncate("short", 10); got != "short" {
			t.Errorf("expected untouched text, got %q", got)
		}
		if got := Truncate("a longer sentence", 8); got != "a longer..." {
			t.Errorf("expected truncated text, got %q", got)
		}
	})
}

func TestOpenBrowser(t *testing.T) {
	origRuntime, origStart := getRuntime, startCommand
	t.Cleanup(func() { getRuntime, startCommand = origRuntime, origStart })

	var started []string
	startCommand = func(cmd *exec.Cmd) error {
		started = cmd.Args
		return nil
	}

	t.Run("Linux", func(t *testing.T) {
		getRuntime = func() string { return "linux" }
		if err := OpenBrowser("https://example.com/e/1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(started) != 2 || started[0] != "xdg-open" {
			t.Errorf("expected xdg-open invocation, got %v", started)
		}
	})

	t.Run("Rejects Non Web Links", func(t *testing.T) {
		if err := OpenBrowser("file:///etc/passwd"); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Unsupported Platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}
