package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"deedles.dev/circscroll/internal/config"
	"deedles.dev/circscroll/internal/scroll"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseDefault(t *testing.T) {
	c, err := config.Parse(strings.NewReader(config.DefaultFile()))
	if err != nil {
		t.Fatal(err)
	}

	want := config.Config{
		Sensitivity: 10,
		Retry:       3 * time.Second,
		Processors:  []string{"circular_scroll"},
	}
	c.Devices = nil
	if diff := cmp.Diff(want, c, cmpopts.IgnoreUnexported(config.Config{})); diff != "" {
		t.Fatalf("default config (-want +got):\n%v", diff)
	}
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a-event-mouse", "b-event-mouse", "c-event-kbd"} {
		err := os.WriteFile(filepath.Join(dir, name), nil, 0o600)
		if err != nil {
			t.Fatal(err)
		}
	}

	src := strings.Join([]string{
		"# comment",
		"",
		"sensitivity 0x4",
		"  retry 500ms  ",
		"grab yes",
		"processor circular_scroll",
		"processor other",
		"device " + filepath.Join(dir, "*-event-mouse"),
		"device " + filepath.Join(dir, "missing"),
	}, "\n")

	c, err := config.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	want := config.Config{
		Sensitivity: 4,
		Retry:       500 * time.Millisecond,
		Grab:        true,
		Processors:  []string{"circular_scroll", "other"},
		Devices: []string{
			filepath.Join(dir, "a-event-mouse"),
			filepath.Join(dir, "b-event-mouse"),
		},
	}
	if diff := cmp.Diff(want, c, cmpopts.IgnoreUnexported(config.Config{})); diff != "" {
		t.Fatalf("config (-want +got):\n%v", diff)
	}
}

func TestParseMaxSensitivity(t *testing.T) {
	c, err := config.Parse(strings.NewReader("sensitivity 65536"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Sensitivity != scroll.MaxSensitivity {
		t.Fatalf("sensitivity = %v, want %v", c.Sensitivity, scroll.MaxSensitivity)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown", "bogus 1", `unknown directive "bogus" on line 1`},
		{"sensitivity twice", "sensitivity 1\nsensitivity 2", "line 2: attempted to set sensitivity twice"},
		{"sensitivity zero", "sensitivity 0", "line 1: sensitivity must be positive"},
		{"sensitivity too large", "sensitivity 65537", "line 1: sensitivity must be at most 65536"},
		{"sensitivity huge", "sensitivity 0x20000000000000", "line 1: sensitivity must be at most 65536"},
		{"sensitivity junk", "sensitivity fast", "line 1: parse sensitivity"},
		{"retry twice", "retry 1s\nretry 2s", "line 2: attempted to set retry twice"},
		{"retry junk", "retry soon", "line 1: parse retry"},
		{"grab twice", "grab no\ngrab yes", "line 2: attempted to set grab twice"},
		{"grab junk", "grab maybe", "line 1: parse grab"},
		{"processor empty", "processor", "line 1: invalid processor name"},
		{"processor spaces", "processor a b", "line 1: invalid processor name"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := config.Parse(strings.NewReader(test.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Fatalf("error %q does not contain %q", err, test.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	err := os.WriteFile(path, []byte("sensitivity 1\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	c, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Sensitivity != 1 {
		t.Fatalf("sensitivity = %v, want 1", c.Sensitivity)
	}

	_, err = config.Load(filepath.Join(t.TempDir(), "missing"))
	if !os.IsNotExist(err) {
		t.Fatalf("err = %v, want not exist", err)
	}
}
