package sensor

// Name implements service.Service
func (b *Bridge) Name() string {
	return "sensor"
}

// Dependencies implements service.Service
func (b *Bridge) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: Config (optional, overrides default)
func (b *Bridge) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(Config); ok {
			b.cfg = cfg
		}
	}
	return nil
}

// Start implements service.Service
// Open failure is not propagated: the game runs on keyboard simulation instead
func (b *Bridge) Start() error {
	if b.cfg.Port == "" {
		b.log.Info("no serial port configured, sensor disabled")
		return nil
	}
	_ = b.Connect(b.cfg)
	return nil
}
