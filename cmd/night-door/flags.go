package main

import (
	"flag"

	"github.com/lixenwraith/night-door/config"
)

// options holds command-line flags; set flags override the config file
type options struct {
	configPath string
	listPorts  bool

	port     string
	baud     int
	mute     bool
	listen   string
	headless bool
	debug    bool
	seed     uint64
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("night-door", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "TOML config file")
	fs.BoolVar(&o.listPorts, "list-ports", false, "List serial ports and exit")
	fs.StringVar(&o.port, "port", "", "Serial port of the door sensor (empty: keyboard only)")
	fs.IntVar(&o.baud, "baud", 0, "Serial baud rate")
	fs.BoolVar(&o.mute, "mute", false, "Start with audio muted")
	fs.StringVar(&o.listen, "listen", "", "Spectator feed address, e.g. :8080")
	fs.BoolVar(&o.headless, "headless", false, "Run without a terminal display")
	fs.BoolVar(&o.debug, "debug", false, "Write debug logs to logs/night-door.log")
	fs.Uint64Var(&o.seed, "seed", 0, "Random seed (0: time based)")
	return fs
}

// apply copies only explicitly set flags onto cfg
func (o *options) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Sensor.Port = o.port
		case "baud":
			cfg.Sensor.Baud = o.baud
		case "mute":
			cfg.Audio.Mute = o.mute
		case "listen":
			cfg.Network.Listen = o.listen
		case "headless":
			cfg.Headless = o.headless
		case "debug":
			cfg.Log.Debug = o.debug
		case "seed":
			cfg.Engine.Seed = o.seed
		}
	})
}
