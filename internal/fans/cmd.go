package fans

import (
	"context"
	"fmt"

	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/policy"
	"github.com/markusressel/i8kfans/internal/util"
)

// CmdFans drives both fans through external executables, "i8kfan" by default.
type CmdFans struct {
	Config configuration.FansConfig `json:"config"`
}

func (fans *CmdFans) GetConfig() configuration.FansConfig {
	return fans.Config
}

func (fans *CmdFans) GetLevels(ctx context.Context) (cpu policy.SpeedLevel, gpu policy.SpeedLevel, err error) {
	conf := fans.Config.Cmd.GetLevels

	output, err := util.SafeCmdExecution(ctx, conf.Exec, conf.Args, commandTimeout())
	if err != nil {
		return 0, 0, err
	}

	return ParseLevels(output)
}

func (fans *CmdFans) SetLevels(ctx context.Context, cpu policy.LevelCommand, gpu policy.LevelCommand) error {
	conf := fans.Config.Cmd.SetLevels

	args := util.ReplacePlaceholders(conf.Args, map[string]string{
		configuration.PlaceholderCpu: cpu.String(),
		configuration.PlaceholderGpu: gpu.String(),
	})

	_, err := util.SafeCmdExecution(ctx, conf.Exec, args, commandTimeout())
	if err != nil {
		return fmt.Errorf("unable to set fan levels (cpu: %s, gpu: %s): %w", cpu, gpu, err)
	}
	return nil
}
