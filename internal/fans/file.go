package fans

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/policy"
	"github.com/markusressel/i8kfans/internal/util"
)

// FileFans stores the level pair as "<cpu> <gpu>" in a file.
// A missing file is treated as both fans being off.
type FileFans struct {
	Config configuration.FansConfig `json:"config"`

	mu sync.Mutex
}

func (fans *FileFans) GetConfig() configuration.FansConfig {
	return fans.Config
}

func (fans *FileFans) GetLevels(ctx context.Context) (cpu policy.SpeedLevel, gpu policy.SpeedLevel, err error) {
	fans.mu.Lock()
	defer fans.mu.Unlock()
	return fans.read()
}

func (fans *FileFans) SetLevels(ctx context.Context, cpu policy.LevelCommand, gpu policy.LevelCommand) error {
	fans.mu.Lock()
	defer fans.mu.Unlock()

	currentCpu, currentGpu, err := fans.read()
	if err != nil {
		return err
	}
	if level, ok := cpu.Level(); ok {
		currentCpu = level
	}
	if level, ok := gpu.Level(); ok {
		currentGpu = level
	}

	filePath, err := util.ExpandHome(fans.Config.File.Path)
	if err != nil {
		return err
	}
	value := fmt.Sprintf("%d %d\n", currentCpu, currentGpu)
	if err = util.WriteStringToFileAtomic(value, filePath); err != nil {
		return fmt.Errorf("unable to write fan levels to %s: %w", filePath, err)
	}
	return nil
}

func (fans *FileFans) read() (cpu policy.SpeedLevel, gpu policy.SpeedLevel, err error) {
	filePath, err := util.ExpandHome(fans.Config.File.Path)
	if err != nil {
		return 0, 0, err
	}

	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return policy.LevelOff, policy.LevelOff, nil
	}
	if err != nil {
		return 0, 0, err
	}
	return ParseLevels(string(data))
}
