package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/night-door/config"
	"github.com/lixenwraith/night-door/door"
	"github.com/lixenwraith/night-door/engine"
	"github.com/lixenwraith/night-door/light"
	"github.com/lixenwraith/night-door/room"
	"github.com/lixenwraith/night-door/status"
	"github.com/lixenwraith/night-door/threat"
)

// Independent random streams per component, all derived from one seed
const (
	streamDoor uint64 = iota + 1
	streamThreat
	streamLight
)

func resolveSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

// buildGame wires door, threat, light and rooms into a game
// Attach order sets dispatch order: threat relief lands before the coordinator advances
func buildGame(cfg config.Config, seed uint64, reg *status.Registry, log logrus.FieldLogger) (*engine.Game, error) {
	game := engine.NewGame(reg, log)
	q := game.Queue()
	stream := func(id uint64) *rand.Rand {
		return rand.New(rand.NewPCG(seed, id))
	}

	d := door.NewMachine(cfg.DoorConfig(), stream(streamDoor), q, reg, log)
	t := threat.NewEngine(cfg.ThreatConfig(), stream(streamThreat), q, reg, log)
	l := light.NewSwitch(cfg.LightConfig(), stream(streamLight), q, reg, log)

	rooms, err := room.NewCoordinator(cfg.RoomDefinitions(), d, t, l, q, reg, log)
	if err != nil {
		return nil, fmt.Errorf("rooms: %w", err)
	}

	if err := errors.Join(
		game.AttachDoor(d),
		game.AttachThreat(t),
		game.AttachLight(l),
		game.AttachCoordinator(rooms),
	); err != nil {
		return nil, err
	}
	return game, nil
}
