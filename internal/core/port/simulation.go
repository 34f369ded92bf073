package port

import (
	"batsim2mqtt/internal/core/domain"
)

// ChargeModel computes the next battery voltage and current for one tick.
type ChargeModel interface {
	Tick(voltageV, targetVoltageV, netPowerW, deltaHours float64) (domain.ChargeTickResult, error)
}

// EclipseModel computes the instantaneous solar power while the eclipse flag
// is set.
type EclipseModel interface {
	SolarPower(elapsedSeconds, halfDurationSeconds, initialSolarPowerW float64) domain.EclipseTickResult
}

// PackProbe reads the real battery channels. Implementations may talk to
// actual hardware; the bridge ships with a bench stub.
type PackProbe interface {
	Open() error
	Read() (*domain.PackTelemetry, error)
	Close() error
}
