package fans

import (
	"context"
	"os/exec"
	"testing"

	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/policy"
	"github.com/stretchr/testify/assert"
)

func getEchoPath() string {
	// unlikely to fail
	p, _ := exec.LookPath("echo")
	return p
}

func createCmdFansConfig(getArgs ...string) configuration.FansConfig {
	return configuration.FansConfig{
		Cmd: &configuration.CmdFansConfig{
			GetLevels: &configuration.ExecConfig{
				Exec: getEchoPath(),
				Args: getArgs,
			},
			SetLevels: &configuration.ExecConfig{
				Exec: getEchoPath(),
				Args: []string{"%cpu%", "%gpu%"},
			},
		},
	}
}

func TestCmdFans_NewActuator(t *testing.T) {
	// GIVEN
	config := createCmdFansConfig()

	// WHEN
	actuator, err := NewActuator(config)

	// THEN
	assert.NoError(t, err)
	assert.IsType(t, &CmdFans{}, actuator)
	assert.Equal(t, config, actuator.GetConfig())
}

func TestNewActuator_NoSubConfig(t *testing.T) {
	// WHEN
	actuator, err := NewActuator(configuration.FansConfig{})

	// THEN
	assert.Error(t, err)
	assert.Nil(t, actuator)
}

func TestCmdFans_GetLevels(t *testing.T) {
	// GIVEN
	actuator, _ := NewActuator(createCmdFansConfig("1", "2"))

	// WHEN
	cpu, gpu, err := actuator.GetLevels(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, policy.LevelMedium, cpu)
	assert.Equal(t, policy.LevelMax, gpu)
}

func TestCmdFans_GetLevels_OutOfRange(t *testing.T) {
	// GIVEN
	actuator, _ := NewActuator(createCmdFansConfig("3", "0"))

	// WHEN
	_, _, err := actuator.GetLevels(context.Background())

	// THEN
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestCmdFans_GetLevels_CommandError(t *testing.T) {
	// GIVEN
	config := createCmdFansConfig()
	config.Cmd.GetLevels.Exec = "/usr/bin/does_not_exist"
	actuator, _ := NewActuator(config)

	// WHEN
	_, _, err := actuator.GetLevels(context.Background())

	// THEN
	assert.Error(t, err)
}

func TestCmdFans_SetLevels(t *testing.T) {
	// GIVEN
	actuator, _ := NewActuator(createCmdFansConfig())

	// WHEN
	err := actuator.SetLevels(context.Background(), policy.Set(policy.LevelMax), policy.Keep())

	// THEN
	assert.NoError(t, err)
}

func TestCmdFans_SetLevels_CommandError(t *testing.T) {
	// GIVEN
	config := createCmdFansConfig()
	config.Cmd.SetLevels.Exec = "/usr/bin/does_not_exist"
	actuator, _ := NewActuator(config)

	// WHEN
	err := actuator.SetLevels(context.Background(), policy.Keep(), policy.Set(policy.LevelOff))

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cpu: -, gpu: 0")
}

func TestParseLevels(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		wantCpu policy.SpeedLevel
		wantGpu policy.SpeedLevel
		wantErr bool
	}{
		{"both off", "0 0", policy.LevelOff, policy.LevelOff, false},
		{"mixed", "2 1", policy.LevelMax, policy.LevelMedium, false},
		{"extra whitespace", "  1\t2\n", policy.LevelMedium, policy.LevelMax, false},
		{"single value", "1", 0, 0, true},
		{"three values", "1 1 1", 0, 0, true},
		{"negative", "-1 0", 0, 0, true},
		{"not a number", "a b", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN
			cpu, gpu, err := ParseLevels(tt.output)

			// THEN
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLevel)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantCpu, cpu)
			assert.Equal(t, tt.wantGpu, gpu)
		})
	}
}
