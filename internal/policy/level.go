package policy

import (
	"fmt"
	"strconv"
)

// SpeedLevel is a discrete fan speed step, as understood by the i8k driver.
type SpeedLevel int

const (
	LevelOff    SpeedLevel = 0
	LevelMedium SpeedLevel = 1
	LevelMax    SpeedLevel = 2

	LevelMin = LevelOff
)

// Valid reports whether the level is one of the steps a fan can be set to.
func (l SpeedLevel) Valid() bool {
	return l >= LevelMin && l <= LevelMax
}

func (l SpeedLevel) String() string {
	return strconv.Itoa(int(l))
}

// ParseSpeedLevel parses the textual representation of a level, e.g. "1".
func ParseSpeedLevel(s string) (SpeedLevel, error) {
	value, err := strconv.Atoi(s)
	if err != nil {
		return LevelMin, fmt.Errorf("invalid speed level %q: %w", s, err)
	}
	level := SpeedLevel(value)
	if !level.Valid() {
		return LevelMin, fmt.Errorf("speed level %d out of range [%d..%d]", value, LevelMin, LevelMax)
	}
	return level, nil
}

// LevelCommand is what a single fan is told to do in one actuation:
// either keep its current speed, or switch to a specific level.
type LevelCommand struct {
	level SpeedLevel
	set   bool
}

// NoOpMarker is the wire form of a Keep command.
const NoOpMarker = "-"

// Keep returns a command that leaves the fan untouched.
func Keep() LevelCommand {
	return LevelCommand{}
}

// Set returns a command that switches the fan to the given level.
func Set(level SpeedLevel) LevelCommand {
	return LevelCommand{level: level, set: true}
}

func (c LevelCommand) IsKeep() bool {
	return !c.set
}

// Level returns the requested level and whether there is one at all.
func (c LevelCommand) Level() (SpeedLevel, bool) {
	return c.level, c.set
}

// String returns the argument form used by i8kfan: the level digit, or "-".
func (c LevelCommand) String() string {
	if !c.set {
		return NoOpMarker
	}
	return c.level.String()
}

// ParseLevelCommand is the inverse of LevelCommand.String.
func ParseLevelCommand(s string) (LevelCommand, error) {
	if s == NoOpMarker {
		return Keep(), nil
	}
	level, err := ParseSpeedLevel(s)
	if err != nil {
		return Keep(), err
	}
	return Set(level), nil
}
