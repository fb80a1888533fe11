package policy

import (
	"errors"
	"fmt"
)

var ErrInvalidThresholds = errors.New("invalid thresholds")

// ThresholdPair holds the temperatures at which a fan steps up.
// Low is the temperature at/above which the fan runs at LevelMedium,
// High the one at/above which it runs at LevelMax.
type ThresholdPair struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

func NewThresholdPair(low, high int) (ThresholdPair, error) {
	t := ThresholdPair{Low: low, High: high}
	return t, t.Validate()
}

func (t ThresholdPair) Validate() error {
	if t.Low > t.High {
		return fmt.Errorf("%w: low (%d) must not be greater than high (%d)", ErrInvalidThresholds, t.Low, t.High)
	}
	return nil
}

func (t ThresholdPair) String() string {
	return fmt.Sprintf("[%d, %d]", t.Low, t.High)
}

// Decide maps a temperature to the level the fan should run at.
// There is no hysteresis: a temperature sitting exactly on a threshold
// will flip the level whenever it crosses it.
// currentLevel does not influence the result, callers compare against it
// to find out whether anything has to be done at all.
func Decide(temperature int, currentLevel SpeedLevel, thresholds ThresholdPair) SpeedLevel {
	switch {
	case temperature >= thresholds.High:
		return LevelMax
	case temperature >= thresholds.Low:
		return LevelMedium
	default:
		return LevelOff
	}
}

// Balance makes sure the two fans never run more than one step apart,
// so the cooler side keeps moving air through the chassis while the hot side
// is at full speed. It only ever raises the lower of the two levels.
func Balance(cpuTarget, gpuTarget SpeedLevel) (SpeedLevel, SpeedLevel) {
	diff := gpuTarget - cpuTarget
	switch {
	case diff >= 2:
		cpuTarget = raise(cpuTarget, gpuTarget)
	case diff <= -2:
		gpuTarget = raise(gpuTarget, cpuTarget)
	}
	return cpuTarget, gpuTarget
}

// raise lifts the cooler level to one step below the hotter one,
// without ever leaving the range of valid levels.
func raise(cooler, hotter SpeedLevel) SpeedLevel {
	raised := hotter - 1
	if raised > LevelMax {
		raised = LevelMax
	}
	if raised < cooler {
		return cooler
	}
	return raised
}
