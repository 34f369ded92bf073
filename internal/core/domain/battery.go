package domain

import (
	"fmt"
	"math"
)

// Parameters holds the physical constants of the simulated battery and solar
// array. They are computed once at startup and never change afterwards.
//
// The battery follows a simple exponential energy model:
//
//	Energy = ModelConstantWh * (exp(V/NominalVoltageV) - 1)
//
// which gives the maximum voltage the pack can reach at full capacity.
type Parameters struct {
	CapacityWh      float64
	NominalVoltageV float64
	ModelConstantWh float64
	MaxVoltageV     float64
	SolarPowerMaxW  float64
	LoadPowerW      float64
}

// Defaults are the initial values of the writable/simulated quantities.
// They must be inside their physical ranges before the control loop starts.
type Defaults struct {
	SimVoltageV    float64
	TargetVoltageV float64
	SolarPowerW    float64
	Eclipse        int
}

func NewParameters(capacityWh, nominalVoltageV, modelConstantWh, solarPowerMaxW, loadPowerW float64) Parameters {
	return Parameters{
		CapacityWh:      capacityWh,
		NominalVoltageV: nominalVoltageV,
		ModelConstantWh: modelConstantWh,
		MaxVoltageV:     math.Log(capacityWh/modelConstantWh+1) * nominalVoltageV,
		SolarPowerMaxW:  solarPowerMaxW,
		LoadPowerW:      loadPowerW,
	}
}

// Validate checks the startup defaults against the physical ranges.
// A non-nil error is a configuration error: the process must not start
// the simulation loop.
func (p Parameters) Validate(d Defaults) error {
	if !(p.MaxVoltageV > 0) {
		return fmt.Errorf("max voltage %f is not positive: check battery capacity and model constant", p.MaxVoltageV)
	}
	if d.SimVoltageV < 0 || d.SimVoltageV > p.MaxVoltageV {
		return fmt.Errorf("default battery voltage %f is out of the allowed range [0, %f]", d.SimVoltageV, p.MaxVoltageV)
	}
	if d.SolarPowerW < 0 || d.SolarPowerW > p.SolarPowerMaxW {
		return fmt.Errorf("default solar power %f is out of the allowed range [0, %f]", d.SolarPowerW, p.SolarPowerMaxW)
	}
	if d.TargetVoltageV < 0 || d.TargetVoltageV > p.MaxVoltageV {
		return fmt.Errorf("default target voltage %f is out of the allowed range [0, %f]", d.TargetVoltageV, p.MaxVoltageV)
	}
	if d.Eclipse != 0 && d.Eclipse != 1 {
		return fmt.Errorf("default eclipse state %d is not 0 or 1", d.Eclipse)
	}
	return nil
}

// ClampTargetVoltage resolves an externally requested target voltage to the
// value that is actually committed.
func (p Parameters) ClampTargetVoltage(requestedV float64) float64 {
	return math.Max(0, math.Min(requestedV, p.MaxVoltageV))
}

// PackTelemetry is a reading from the real battery channels. The bridge
// republishes these values untouched; no simulation logic is attached.
type PackTelemetry struct {
	VoltageV float64
	CurrentA float64
}
