package policy

import "fmt"

// FanState is a single fan as seen during one control cycle.
type FanState struct {
	Temperature int        `json:"temperature"`
	Current     SpeedLevel `json:"current"`
	Target      SpeedLevel `json:"target"`
}

// Changed reports whether the target differs from the level the fan is running at.
func (s FanState) Changed() bool {
	return s.Target != s.Current
}

// Command returns what the actuator has to be told for this fan.
func (s FanState) Command() LevelCommand {
	if !s.Changed() {
		return Keep()
	}
	return Set(s.Target)
}

func (s FanState) String() string {
	return fmt.Sprintf("%d°C %s->%s", s.Temperature, s.Current, s.Target)
}

// Decision is the outcome of one cycle for both fans.
type Decision struct {
	Cpu FanState `json:"cpu"`
	Gpu FanState `json:"gpu"`
}

// NeedsActuation is true when at least one fan has to change its speed.
func (d Decision) NeedsActuation() bool {
	return d.Cpu.Changed() || d.Gpu.Changed()
}

// Commands returns the per-fan commands of a single actuation call.
func (d Decision) Commands() (cpu LevelCommand, gpu LevelCommand) {
	return d.Cpu.Command(), d.Gpu.Command()
}

// Evaluate runs the speed policy for each fan and balances the result.
// Only Temperature and Current of the given states are used.
func Evaluate(cpu, gpu FanState, cpuThresholds, gpuThresholds ThresholdPair) Decision {
	cpuTarget := Decide(cpu.Temperature, cpu.Current, cpuThresholds)
	gpuTarget := Decide(gpu.Temperature, gpu.Current, gpuThresholds)

	cpu.Target, gpu.Target = Balance(cpuTarget, gpuTarget)

	return Decision{
		Cpu: cpu,
		Gpu: gpu,
	}
}
