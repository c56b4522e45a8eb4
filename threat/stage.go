// Package threat tracks player mistakes and walks the monster toward the door
package threat

import (
	"fmt"
	"strings"
)

// Stage is the monster's proximity, ordered None < Far < Near < Door < Jumpscare
type Stage int8

const (
	None      Stage = -1
	Far       Stage = 0
	Near      Stage = 1
	Door      Stage = 2
	Jumpscare Stage = 3 // Terminal
)

func (s Stage) String() string {
	switch s {
	case None:
		return "None"
	case Far:
		return "Far"
	case Near:
		return "Near"
	case Door:
		return "Door"
	case Jumpscare:
		return "Jumpscare"
	}
	return fmt.Sprintf("Stage(%d)", int8(s))
}

// ParseStage maps a config name to a stage, case-insensitive
func ParseStage(name string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return None, nil
	case "far":
		return Far, nil
	case "near":
		return Near, nil
	case "door":
		return Door, nil
	case "jumpscare":
		return Jumpscare, nil
	}
	return None, fmt.Errorf("unknown stage %q", name)
}

// StageFor maps a mistake count to a summoned stage: floor(mistakes/perStage) clamped to [Far, Door]
// Non-positive perStage always maps to Far
func StageFor(mistakes, perStage int) Stage {
	if perStage <= 0 {
		return Far
	}
	switch idx := mistakes / perStage; {
	case idx <= 0:
		return Far
	case idx == 1:
		return Near
	default:
		return Door
	}
}
