package policy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gpuThresholds = ThresholdPair{Low: 45, High: 53}
	cpuThresholds = ThresholdPair{Low: 40, High: 50}

	allLevels = []SpeedLevel{LevelOff, LevelMedium, LevelMax}
)

func TestDecide_Scenarios(t *testing.T) {
	tests := []struct {
		temperature int
		expected    SpeedLevel
	}{
		{44, LevelOff},
		{45, LevelMedium},
		{53, LevelMax},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.temperature), func(t *testing.T) {
			for _, current := range allLevels {
				assert.Equal(t, tt.expected, Decide(tt.temperature, current, gpuThresholds))
			}
		})
	}
}

func TestDecide_AllTemperatures(t *testing.T) {
	thresholds := []ThresholdPair{
		{Low: 45, High: 53},
		{Low: 40, High: 50},
		{Low: 50, High: 50},
		{Low: -10, High: 0},
	}

	for _, pair := range thresholds {
		for temp := -50; temp <= 150; temp++ {
			var expected SpeedLevel
			switch {
			case temp < pair.Low:
				expected = LevelOff
			case temp < pair.High:
				expected = LevelMedium
			default:
				expected = LevelMax
			}

			for _, current := range allLevels {
				result := Decide(temp, current, pair)
				assert.Equal(t, expected, result, "temp %d, thresholds %v", temp, pair)
				assert.True(t, result.Valid())
				// same input, same output
				assert.Equal(t, result, Decide(temp, current, pair))
			}
		}
	}
}

func TestDecide_IsMonotonic(t *testing.T) {
	// GIVEN
	last := LevelMin

	// WHEN
	for temp := 0; temp <= 100; temp++ {
		level := Decide(temp, LevelOff, cpuThresholds)

		// THEN
		assert.GreaterOrEqual(t, level, last)
		last = level
	}
}

func TestDecide_OscillatesOnThreshold(t *testing.T) {
	// GIVEN
	current := LevelOff
	var levels []SpeedLevel

	// WHEN
	for _, temp := range []int{45, 44, 45, 44} {
		current = Decide(temp, current, gpuThresholds)
		levels = append(levels, current)
	}

	// THEN
	assert.Equal(t, []SpeedLevel{LevelMedium, LevelOff, LevelMedium, LevelOff}, levels)
}

func TestBalance_Scenarios(t *testing.T) {
	tests := []struct {
		cpu, gpu         SpeedLevel
		wantCpu, wantGpu SpeedLevel
	}{
		{LevelOff, LevelMax, LevelMedium, LevelMax},
		{LevelMax, LevelOff, LevelMax, LevelMedium},
		{LevelMedium, LevelMax, LevelMedium, LevelMax},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s-%s", tt.cpu, tt.gpu), func(t *testing.T) {
			cpu, gpu := Balance(tt.cpu, tt.gpu)
			assert.Equal(t, tt.wantCpu, cpu)
			assert.Equal(t, tt.wantGpu, gpu)
		})
	}
}

func TestBalance_Invariants(t *testing.T) {
	for _, cpu := range allLevels {
		for _, gpu := range allLevels {
			c, g := Balance(cpu, gpu)

			diff := c - g
			if diff < 0 {
				diff = -diff
			}
			assert.LessOrEqual(t, diff, SpeedLevel(1), "balance(%s, %s)", cpu, gpu)
			assert.GreaterOrEqual(t, c, cpu)
			assert.GreaterOrEqual(t, g, gpu)
			assert.True(t, c.Valid())
			assert.True(t, g.Valid())
		}
	}
}

func TestBalance_NoChangeWithinOneStep(t *testing.T) {
	for _, cpu := range allLevels {
		for _, gpu := range allLevels {
			if cpu-gpu > 1 || gpu-cpu > 1 {
				continue
			}
			c, g := Balance(cpu, gpu)
			assert.Equal(t, cpu, c)
			assert.Equal(t, gpu, g)
		}
	}
}

func TestNewThresholdPair(t *testing.T) {
	// GIVEN
	valid, err := NewThresholdPair(40, 50)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, ThresholdPair{Low: 40, High: 50}, valid)

	_, err = NewThresholdPair(50, 50)
	assert.NoError(t, err)

	_, err = NewThresholdPair(51, 50)
	assert.ErrorIs(t, err, ErrInvalidThresholds)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name            string
		cpu, gpu        FanState
		expectedCpu     SpeedLevel
		expectedGpu     SpeedLevel
		needsActuation  bool
		expectedCommand [2]string
	}{
		{
			name:            "cold laptop stays off",
			cpu:             FanState{Temperature: 30, Current: LevelOff},
			gpu:             FanState{Temperature: 30, Current: LevelOff},
			expectedCpu:     LevelOff,
			expectedGpu:     LevelOff,
			needsActuation:  false,
			expectedCommand: [2]string{"-", "-"},
		},
		{
			name:            "hot gpu pulls cpu fan up",
			cpu:             FanState{Temperature: 30, Current: LevelOff},
			gpu:             FanState{Temperature: 60, Current: LevelMedium},
			expectedCpu:     LevelMedium,
			expectedGpu:     LevelMax,
			needsActuation:  true,
			expectedCommand: [2]string{"1", "2"},
		},
		{
			name:            "only cpu changes",
			cpu:             FanState{Temperature: 45, Current: LevelOff},
			gpu:             FanState{Temperature: 40, Current: LevelOff},
			expectedCpu:     LevelMedium,
			expectedGpu:     LevelOff,
			needsActuation:  true,
			expectedCommand: [2]string{"1", "-"},
		},
		{
			name:            "already at target",
			cpu:             FanState{Temperature: 55, Current: LevelMax},
			gpu:             FanState{Temperature: 50, Current: LevelMedium},
			expectedCpu:     LevelMax,
			expectedGpu:     LevelMedium,
			needsActuation:  false,
			expectedCommand: [2]string{"-", "-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN
			decision := Evaluate(tt.cpu, tt.gpu, cpuThresholds, gpuThresholds)

			// THEN
			assert.Equal(t, tt.expectedCpu, decision.Cpu.Target)
			assert.Equal(t, tt.expectedGpu, decision.Gpu.Target)
			assert.Equal(t, tt.cpu.Current, decision.Cpu.Current)
			assert.Equal(t, tt.gpu.Temperature, decision.Gpu.Temperature)
			assert.Equal(t, tt.needsActuation, decision.NeedsActuation())

			cpuCmd, gpuCmd := decision.Commands()
			assert.Equal(t, tt.expectedCommand, [2]string{cpuCmd.String(), gpuCmd.String()})
		})
	}
}

func TestThresholdPair_String(t *testing.T) {
	assert.Equal(t, "[40, 50]", cpuThresholds.String())
}
