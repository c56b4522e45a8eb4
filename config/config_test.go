package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/night-door/threat"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "night-door.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.Rooms) != 4 || !cfg.Rooms[2].Safe {
		t.Errorf("unexpected default rooms %+v", cfg.Rooms)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Door.OpenBuffer != Default().Door.OpenBuffer {
		t.Error("Expected defaults")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
headless = true

[sensor]
port = "/dev/ttyUSB1"
baud = 115200

[door]
peek_buffer = 3
min_clear_time = "2s"
max_clear_time = "2.5s"

[threat]
kill_threshold = "near"
peek_is_danger = false

[jumpscare]
on_time = "90ms"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if !cfg.Headless || cfg.Sensor.Port != "/dev/ttyUSB1" || cfg.Sensor.Baud != 115200 {
		t.Errorf("sensor section not applied: %+v", cfg.Sensor)
	}
	dc := cfg.DoorConfig()
	if dc.PeekBuffer != 3 || dc.OpenBuffer != Default().Door.OpenBuffer {
		t.Errorf("door: %+v", dc)
	}
	if dc.MinClearTime != 2*time.Second || dc.MaxClearTime != 2500*time.Millisecond {
		t.Errorf("clear times %v %v", dc.MinClearTime, dc.MaxClearTime)
	}

	tc := cfg.ThreatConfig()
	if tc.KillThreshold != threat.Near || tc.PeekIsDanger {
		t.Errorf("threat: kill %v peek %v", tc.KillThreshold, tc.PeekIsDanger)
	}
	if tc.Jumpscare.OnTime != 90*time.Millisecond || tc.Jumpscare.FlashCount != Default().Jumpscare.FlashCount {
		t.Errorf("jumpscare: %+v", tc.Jumpscare)
	}
	if len(cfg.Rooms) != len(DefaultRooms()) {
		t.Error("Expected default rooms kept when the file has none")
	}
}

func TestLoadRoomsReplaceDefaults(t *testing.T) {
	path := writeConfig(t, `
[[rooms]]
id = "attic"
light = "attic-bulb"
far = { position = [1.0, 2.0, 3.0], yaw = 90.0 }

[[rooms]]
id = "porch"
name = "Front porch"
safe = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	defs := cfg.RoomDefinitions()
	if len(defs) != 2 {
		t.Fatalf("Expected 2 rooms, got %d", len(defs))
	}
	if defs[0].ID != "attic" || defs[0].Name != "attic" || defs[0].Light != "attic-bulb" {
		t.Errorf("room 0: %+v", defs[0])
	}
	if defs[0].Far.Position != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("far position %v", defs[0].Far.Position)
	}
	if !defs[1].Safe || defs[1].Name != "Front porch" {
		t.Errorf("room 1: %+v", defs[1])
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[door\n", "decode config"},
		{"bad duration", "[door]\nmin_clear_time = \"soon\"\n", "invalid duration"},
		{"unknown key", "[door]\nhinge = 3\n", "unknown keys"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected missing file error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"peek at open", func(c *Config) { c.Door.PeekBuffer = c.Door.OpenBuffer }, "peek_buffer"},
		{"min above max", func(c *Config) { c.Door.MinClearTime = D(10 * time.Second); c.Door.MaxClearTime = D(time.Second) }, "min_clear_time"},
		{"no rooms", func(c *Config) { c.Rooms = nil }, "at least one room"},
		{"unknown kill stage", func(c *Config) { c.Threat.KillThreshold = "basement" }, "kill_threshold"},
		{"kill stage out of range", func(c *Config) { c.Threat.KillThreshold = "jumpscare" }, "kill_threshold"},
		{"duplicate room", func(c *Config) { c.Rooms[1].ID = c.Rooms[0].ID }, "duplicate id"},
		{"short position", func(c *Config) { c.Rooms[0].Far.Position = []float64{1, 2} }, "3 components"},
		{"inactive chance", func(c *Config) { c.Threat.InactiveChance = 1.5 }, "inactive_chance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1.5s")); err != nil || d.Duration != 1500*time.Millisecond {
		t.Fatalf("got %v, %v", d, err)
	}
	out, _ := d.MarshalText()
	if string(out) != "1.5s" {
		t.Errorf("MarshalText = %q", out)
	}
}
