package main

import (
	"testing"
	"time"

	"github.com/lixenwraith/night-door/config"
	"github.com/lixenwraith/night-door/status"
)

func TestOptions_ApplyOnlySetFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg config.Config)
	}{
		{
			name: "none set keeps file values",
			args: nil,
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Sensor.Port != "/dev/from-file" || cfg.Network.Listen != ":9000" {
					t.Errorf("file values overwritten: %+v %+v", cfg.Sensor, cfg.Network)
				}
			},
		},
		{
			name: "port and mute",
			args: []string{"-port", "/dev/ttyACM0", "-mute"},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Sensor.Port != "/dev/ttyACM0" || !cfg.Audio.Mute {
					t.Errorf("port %q mute %v", cfg.Sensor.Port, cfg.Audio.Mute)
				}
				if cfg.Network.Listen != ":9000" {
					t.Errorf("listen changed to %q", cfg.Network.Listen)
				}
			},
		},
		{
			name: "empty listen disables feed",
			args: []string{"-listen", ""},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Network.Listen != "" {
					t.Errorf("listen = %q, want empty", cfg.Network.Listen)
				}
			},
		},
		{
			name: "seed baud headless debug",
			args: []string{"-seed", "42", "-baud", "115200", "-headless", "-debug"},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Engine.Seed != 42 || cfg.Sensor.Baud != 115200 || !cfg.Headless || !cfg.Log.Debug {
					t.Errorf("got seed %d baud %d headless %v debug %v",
						cfg.Engine.Seed, cfg.Sensor.Baud, cfg.Headless, cfg.Log.Debug)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts options
			fs := newFlagSet(&opts)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}
			cfg := config.Default()
			cfg.Sensor.Port = "/dev/from-file"
			cfg.Network.Listen = ":9000"
			opts.apply(fs, &cfg)
			tt.check(t, cfg)
		})
	}
}

func TestResolveSeed(t *testing.T) {
	if got := resolveSeed(7); got != 7 {
		t.Errorf("resolveSeed(7) = %d", got)
	}
	if got := resolveSeed(0); got == 0 {
		t.Error("zero seed not replaced")
	}
}

func TestBuildGame_StartsInFirstRoom(t *testing.T) {
	cfg := config.Default()
	reg := status.NewRegistry()
	game, err := buildGame(cfg, 1, reg, nil)
	if err != nil {
		t.Fatalf("buildGame: %v", err)
	}
	if err := game.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	now := time.Unix(0, 0)
	game.Step(now)
	game.Step(now.Add(20 * time.Millisecond))

	snap := game.Snapshot()
	if snap.Room.Index != 0 || snap.Room.ID != cfg.Rooms[0].ID {
		t.Errorf("room = %d %q, want 0 %q", snap.Room.Index, snap.Room.ID, cfg.Rooms[0].ID)
	}
	if snap.Room.Count != len(cfg.Rooms) {
		t.Errorf("count = %d, want %d", snap.Room.Count, len(cfg.Rooms))
	}
	if snap.GameOver {
		t.Error("game over at start")
	}
}

func TestBuildGame_RejectsEmptyRooms(t *testing.T) {
	cfg := config.Default()
	cfg.Rooms = nil
	if _, err := buildGame(cfg, 1, status.NewRegistry(), nil); err == nil {
		t.Error("expected error for empty room list")
	}
}
