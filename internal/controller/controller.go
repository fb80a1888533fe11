package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/fans"
	"github.com/markusressel/i8kfans/internal/persistence"
	"github.com/markusressel/i8kfans/internal/policy"
	"github.com/markusressel/i8kfans/internal/sensors"
	"github.com/markusressel/i8kfans/internal/ui"
)

type ControlLoop interface {
	// Run executes a cycle every interval until ctx is done
	Run(ctx context.Context) error
	// Cycle samples both fans once and actuates them if necessary.
	// An error means the cycle was skipped because a reading failed.
	Cycle(ctx context.Context) error

	GetSnapshot() Snapshot
	GetStatistics() Statistics
	GetThresholds() Thresholds
}

type Thresholds struct {
	Cpu policy.ThresholdPair `json:"cpu"`
	Gpu policy.ThresholdPair `json:"gpu"`
}

// Snapshot is the outcome of the most recent successful cycle.
type Snapshot struct {
	Time     time.Time       `json:"time"`
	Decision policy.Decision `json:"decision"`
	Actuated bool            `json:"actuated"`
}

// IsEmpty is true until the first cycle has completed.
func (s Snapshot) IsEmpty() bool {
	return s.Time.IsZero()
}

type Statistics struct {
	Cycles           uint64 `json:"cycles"`
	SkippedCycles    uint64 `json:"skippedCycles"`
	Actuations       uint64 `json:"actuations"`
	FailedActuations uint64 `json:"failedActuations"`
}

type controlLoop struct {
	persistence persistence.Persistence
	cpuSensor   sensors.Sensor
	gpuSensor   sensors.Sensor
	actuator    fans.Actuator
	thresholds  Thresholds
	interval    time.Duration

	now func() time.Time

	mu         sync.RWMutex
	snapshot   Snapshot
	statistics Statistics
}

// NewControlLoop creates the loop driving both fans. persistence may be nil to disable the history.
func NewControlLoop(
	persistence persistence.Persistence,
	cpuSensor sensors.Sensor,
	gpuSensor sensors.Sensor,
	actuator fans.Actuator,
	thresholds Thresholds,
	interval time.Duration,
) ControlLoop {
	return &controlLoop{
		persistence: persistence,
		cpuSensor:   cpuSensor,
		gpuSensor:   gpuSensor,
		actuator:    actuator,
		thresholds:  thresholds,
		interval:    interval,
		now:         time.Now,
	}
}

func (l *controlLoop) Run(ctx context.Context) error {
	ui.Info("Starting control loop (interval: %s, cpu: %s, gpu: %s)", l.interval, l.thresholds.Cpu, l.thresholds.Gpu)

	if l.persistence != nil {
		last, err := l.persistence.LoadLatestActuation()
		if err == nil {
			ui.Debug("Last actuation at %s: cpu %s, gpu %s", last.Time.Format(time.RFC3339), last.Cpu.Command, last.Gpu.Command)
		}
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	// a tick racing with cancellation must not start another cycle
	for ctx.Err() == nil {
		if err := l.Cycle(ctx); err != nil {
			ui.Warning("Skipping cycle: %v", err)
		}

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}

	ui.Info("Control loop stopped.")
	return nil
}

func (l *controlLoop) Cycle(ctx context.Context) error {
	decision, err := l.sample(ctx)

	l.mu.Lock()
	l.statistics.Cycles++
	if err != nil {
		l.statistics.SkippedCycles++
	}
	l.mu.Unlock()

	if err != nil {
		return err
	}

	decision = policy.Evaluate(decision.Cpu, decision.Gpu, l.thresholds.Cpu, l.thresholds.Gpu)
	ui.Debug("cpu: %s, gpu: %s", decision.Cpu, decision.Gpu)

	actuated := false
	if decision.NeedsActuation() {
		actuated = l.actuate(ctx, decision)
	}

	l.mu.Lock()
	l.snapshot = Snapshot{
		Time:     l.now(),
		Decision: decision,
		Actuated: actuated,
	}
	l.mu.Unlock()

	return nil
}

// sample reads everything a cycle needs, the core is never run with partial data
func (l *controlLoop) sample(ctx context.Context) (policy.Decision, error) {
	cpuTemp, err := l.cpuSensor.GetValue(ctx)
	if err != nil {
		return policy.Decision{}, fmt.Errorf("reading cpu temperature: %w", err)
	}
	gpuTemp, err := l.gpuSensor.GetValue(ctx)
	if err != nil {
		return policy.Decision{}, fmt.Errorf("reading gpu temperature: %w", err)
	}
	cpuLevel, gpuLevel, err := l.actuator.GetLevels(ctx)
	if err != nil {
		return policy.Decision{}, fmt.Errorf("reading fan levels: %w", err)
	}
	l.cpuSensor.Record(cpuTemp)
	l.gpuSensor.Record(gpuTemp)

	return policy.Decision{
		Cpu: policy.FanState{Temperature: cpuTemp, Current: cpuLevel},
		Gpu: policy.FanState{Temperature: gpuTemp, Current: gpuLevel},
	}, nil
}

// actuate sends a single command for both fans, failures are logged and not retried.
// A started command is not interrupted by cancelling ctx, only the command timeout bounds it.
func (l *controlLoop) actuate(ctx context.Context, decision policy.Decision) bool {
	cpu, gpu := decision.Commands()
	ui.Info("Setting fan levels cpu: %s, gpu: %s (cpu: %d°C, gpu: %d°C)", cpu, gpu, decision.Cpu.Temperature, decision.Gpu.Temperature)

	err := l.actuator.SetLevels(context.WithoutCancel(ctx), cpu, gpu)

	l.mu.Lock()
	if err != nil {
		l.statistics.FailedActuations++
	} else {
		l.statistics.Actuations++
	}
	l.mu.Unlock()

	if err != nil {
		ui.Error("Error setting fan levels: %v", err)
		return false
	}

	l.recordHistory(decision)
	return true
}

func (l *controlLoop) recordHistory(decision policy.Decision) {
	if l.persistence == nil {
		return
	}
	record := persistence.NewActuationRecord(l.now(), decision)
	if err := l.persistence.SaveActuation(record); err != nil {
		ui.Warning("Unable to save actuation history: %v", err)
		return
	}
	historySize := configuration.CurrentConfig.HistorySize
	if historySize > 0 {
		if err := l.persistence.Prune(historySize); err != nil {
			ui.Warning("Unable to prune actuation history: %v", err)
		}
	}
}

func (l *controlLoop) GetSnapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot
}

func (l *controlLoop) GetStatistics() Statistics {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.statistics
}

func (l *controlLoop) GetThresholds() Thresholds {
	return l.thresholds
}
