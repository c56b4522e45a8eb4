// Package config loads the TOML configuration and maps it onto component configs
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/night-door/door"
	"github.com/lixenwraith/night-door/light"
	"github.com/lixenwraith/night-door/parameter"
	"github.com/lixenwraith/night-door/sensor"
	"github.com/lixenwraith/night-door/threat"
)

// Config is the complete file configuration; zero sections fall back to Default
type Config struct {
	Headless bool `toml:"headless"`

	Engine    EngineConfig    `toml:"engine"`
	Sensor    SensorConfig    `toml:"sensor"`
	Door      DoorConfig      `toml:"door"`
	Threat    ThreatConfig    `toml:"threat"`
	Light     LightConfig     `toml:"light"`
	Jumpscare JumpscareConfig `toml:"jumpscare"`
	Audio     AudioConfig     `toml:"audio"`
	Network   NetworkConfig   `toml:"network"`
	Log       LogConfig       `toml:"log"`
	Sentry    SentryConfig    `toml:"sentry"`

	Rooms []RoomConfig `toml:"rooms"`
}

type EngineConfig struct {
	TickInterval  Duration `toml:"tick_interval"`
	FrameInterval Duration `toml:"frame_interval"`
	Seed          uint64   `toml:"seed"` // 0 picks a random seed
}

type SensorConfig struct {
	Port         string   `toml:"port"` // Empty disables the serial bridge
	Baud         int      `toml:"baud"`
	BaseOffset   int      `toml:"base_offset"`
	ErrorBackoff Duration `toml:"error_backoff"`
}

type DoorConfig struct {
	PeekBuffer   int      `toml:"peek_buffer"`
	OpenBuffer   int      `toml:"open_buffer"`
	SlamDistance int      `toml:"slam_distance"`
	MinClearTime Duration `toml:"min_clear_time"`
	MaxClearTime Duration `toml:"max_clear_time"`
}

type ThreatConfig struct {
	HoldGrace                Duration `toml:"hold_grace"`
	HoldMistakeEvery         Duration `toml:"hold_mistake_every"`
	MistakesPerStage         int      `toml:"mistakes_per_stage"`
	KillThreshold            string   `toml:"kill_threshold"`
	DoorCloseRelief          int      `toml:"door_close_relief"`
	FlashRelief              int      `toml:"flash_relief"`
	FlashTimesTotal          int      `toml:"flash_times_total"`
	DoorOpenNearIsDanger     bool     `toml:"door_open_near_is_danger"`
	NearDoorOpenMistakeEvery Duration `toml:"near_door_open_mistake_every"`
	PeekIsDanger             bool     `toml:"peek_is_danger"`
	InactiveChance           float64  `toml:"inactive_chance"`
	RestoreLocation          bool     `toml:"restore_location"`
}

type LightConfig struct {
	FlashToggles  int      `toml:"flash_toggles"`
	FlashWindow   Duration `toml:"flash_window"`
	ClickPitchMin float64  `toml:"click_pitch_min"`
	ClickPitchMax float64  `toml:"click_pitch_max"`
}

type JumpscareConfig struct {
	FlashCount          int      `toml:"flash_count"`
	OnTime              Duration `toml:"on_time"`
	OffTime             Duration `toml:"off_time"`
	DelayBeforeGameOver Duration `toml:"delay_before_game_over"`
}

type AudioConfig struct {
	Mute       bool    `toml:"mute"`
	Volume     float64 `toml:"volume"`
	SampleRate int     `toml:"sample_rate"`
}

type NetworkConfig struct {
	Listen        string `toml:"listen"` // Empty disables the spectator feed
	AllowCommands bool   `toml:"allow_commands"`
}

type LogConfig struct {
	Debug bool   `toml:"debug"`
	Level string `toml:"level"`
}

type SentryConfig struct {
	DSN         string `toml:"dsn"`
	Environment string `toml:"environment"`
}

// Default returns the built-in configuration
func Default() Config {
	dc := door.DefaultConfig()
	tc := threat.DefaultConfig()
	lc := light.DefaultConfig()
	sc := sensor.DefaultConfig()

	return Config{
		Engine: EngineConfig{
			TickInterval:  D(parameter.GameUpdateInterval),
			FrameInterval: D(parameter.FrameUpdateInterval),
		},
		Sensor: SensorConfig{
			Port:         sc.Port,
			Baud:         sc.Baud,
			BaseOffset:   parameter.SensorBaseOffset,
			ErrorBackoff: D(sc.ErrorBackoff),
		},
		Door: DoorConfig{
			PeekBuffer:   dc.PeekBuffer,
			OpenBuffer:   dc.OpenBuffer,
			SlamDistance: dc.SlamDistance,
			MinClearTime: D(dc.MinClearTime),
			MaxClearTime: D(dc.MaxClearTime),
		},
		Threat: ThreatConfig{
			HoldGrace:                D(tc.HoldGrace),
			HoldMistakeEvery:         D(tc.HoldMistakeEvery),
			MistakesPerStage:         tc.MistakesPerStage,
			KillThreshold:            strings.ToLower(tc.KillThreshold.String()),
			DoorCloseRelief:          tc.DoorCloseRelief,
			FlashRelief:              tc.FlashRelief,
			FlashTimesTotal:          tc.FlashTimesTotal,
			DoorOpenNearIsDanger:     tc.DoorOpenNearIsDanger,
			NearDoorOpenMistakeEvery: D(tc.NearDoorOpenMistakeEvery),
			PeekIsDanger:             tc.PeekIsDanger,
			InactiveChance:           tc.InactiveChance,
			RestoreLocation:          tc.RestoreLocation,
		},
		Light: LightConfig{
			FlashToggles:  lc.FlashToggles,
			FlashWindow:   D(lc.FlashWindow),
			ClickPitchMin: lc.ClickPitchMin,
			ClickPitchMax: lc.ClickPitchMax,
		},
		Jumpscare: JumpscareConfig{
			FlashCount:          tc.Jumpscare.FlashCount,
			OnTime:              D(tc.Jumpscare.OnTime),
			OffTime:             D(tc.Jumpscare.OffTime),
			DelayBeforeGameOver: D(tc.Jumpscare.DelayBeforeGameOver),
		},
		Audio: AudioConfig{
			Volume:     parameter.AudioMasterVolume,
			SampleRate: parameter.AudioSampleRate,
		},
		Network: NetworkConfig{
			Listen: parameter.NetworkDefaultListen,
		},
		Log: LogConfig{
			Level: "info",
		},
		Rooms: DefaultRooms(),
	}
}

// Load reads path over the defaults; an empty path returns the defaults
// A file that declares rooms replaces the default room list
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	defaults := cfg.Rooms
	cfg.Rooms = nil
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !md.IsDefined("rooms") {
		cfg.Rooms = defaults
	}
	return cfg, nil
}

// Validate rejects inconsistent values
func (c Config) Validate() error {
	var errs []error

	if c.Door.PeekBuffer >= c.Door.OpenBuffer {
		errs = append(errs, fmt.Errorf("door: peek_buffer %d must be below open_buffer %d", c.Door.PeekBuffer, c.Door.OpenBuffer))
	}
	if c.Door.SlamDistance <= 0 {
		errs = append(errs, fmt.Errorf("door: slam_distance must be positive"))
	}
	if c.Door.MinClearTime.Duration < 0 || c.Door.MinClearTime.Duration > c.Door.MaxClearTime.Duration {
		errs = append(errs, fmt.Errorf("door: min_clear_time %v must be within [0, max_clear_time %v]", c.Door.MinClearTime, c.Door.MaxClearTime))
	}
	if c.Engine.TickInterval.Duration <= 0 {
		errs = append(errs, fmt.Errorf("engine: tick_interval must be positive"))
	}
	if c.Engine.FrameInterval.Duration <= 0 {
		errs = append(errs, fmt.Errorf("engine: frame_interval must be positive"))
	}

	if s, err := threat.ParseStage(c.Threat.KillThreshold); err != nil {
		errs = append(errs, fmt.Errorf("threat: kill_threshold: %w", err))
	} else if s < threat.Far || s > threat.Door {
		errs = append(errs, fmt.Errorf("threat: kill_threshold %q must be far, near or door", c.Threat.KillThreshold))
	}
	if c.Threat.InactiveChance < 0 || c.Threat.InactiveChance > 1 {
		errs = append(errs, fmt.Errorf("threat: inactive_chance %v outside [0, 1]", c.Threat.InactiveChance))
	}
	if c.Threat.HoldMistakeEvery.Duration <= 0 || c.Threat.NearDoorOpenMistakeEvery.Duration <= 0 {
		errs = append(errs, fmt.Errorf("threat: accrual intervals must be positive"))
	}
	if c.Threat.DoorCloseRelief < 0 || c.Threat.FlashRelief < 0 || c.Threat.FlashTimesTotal < 0 {
		errs = append(errs, fmt.Errorf("threat: relief values must not be negative"))
	}

	if c.Light.FlashToggles < 2 {
		errs = append(errs, fmt.Errorf("light: flash_toggles must be at least 2"))
	}
	if c.Light.ClickPitchMin <= 0 || c.Light.ClickPitchMin > c.Light.ClickPitchMax {
		errs = append(errs, fmt.Errorf("light: click pitch range [%v, %v] invalid", c.Light.ClickPitchMin, c.Light.ClickPitchMax))
	}
	if c.Jumpscare.FlashCount < 0 {
		errs = append(errs, fmt.Errorf("jumpscare: flash_count must not be negative"))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio: volume %v outside [0, 1]", c.Audio.Volume))
	}

	errs = append(errs, validateRooms(c.Rooms)...)
	return errors.Join(errs...)
}

// DoorConfig maps onto door.Config
func (c Config) DoorConfig() door.Config {
	return door.Config{
		PeekBuffer:   c.Door.PeekBuffer,
		OpenBuffer:   c.Door.OpenBuffer,
		SlamDistance: c.Door.SlamDistance,
		BaseOffset:   c.Sensor.BaseOffset,
		MinClearTime: c.Door.MinClearTime.Duration,
		MaxClearTime: c.Door.MaxClearTime.Duration,
	}
}

// ThreatConfig maps onto threat.Config; call after Validate
func (c Config) ThreatConfig() threat.Config {
	kill, err := threat.ParseStage(c.Threat.KillThreshold)
	if err != nil {
		kill = threat.Door
	}
	return threat.Config{
		HoldGrace:                c.Threat.HoldGrace.Duration,
		HoldMistakeEvery:         c.Threat.HoldMistakeEvery.Duration,
		MistakesPerStage:         c.Threat.MistakesPerStage,
		KillThreshold:            kill,
		DoorCloseRelief:          c.Threat.DoorCloseRelief,
		FlashRelief:              c.Threat.FlashRelief,
		FlashTimesTotal:          c.Threat.FlashTimesTotal,
		DoorOpenNearIsDanger:     c.Threat.DoorOpenNearIsDanger,
		NearDoorOpenMistakeEvery: c.Threat.NearDoorOpenMistakeEvery.Duration,
		PeekIsDanger:             c.Threat.PeekIsDanger,
		InactiveChance:           c.Threat.InactiveChance,
		RestoreLocation:          c.Threat.RestoreLocation,
		Jumpscare: threat.JumpscareConfig{
			FlashCount:          c.Jumpscare.FlashCount,
			OnTime:              c.Jumpscare.OnTime.Duration,
			OffTime:             c.Jumpscare.OffTime.Duration,
			DelayBeforeGameOver: c.Jumpscare.DelayBeforeGameOver.Duration,
		},
	}
}

// LightConfig maps onto light.Config
func (c Config) LightConfig() light.Config {
	return light.Config{
		FlashToggles:  c.Light.FlashToggles,
		FlashWindow:   c.Light.FlashWindow.Duration,
		ClickPitchMin: c.Light.ClickPitchMin,
		ClickPitchMax: c.Light.ClickPitchMax,
	}
}

// SensorConfig maps onto sensor.Config
func (c Config) SensorConfig() sensor.Config {
	return sensor.Config{
		Port:         c.Sensor.Port,
		Baud:         c.Sensor.Baud,
		ErrorBackoff: c.Sensor.ErrorBackoff.Duration,
	}
}
