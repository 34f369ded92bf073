package domain

// ChargeTickResult is the outcome of one charge model step. When Changed is
// false the caller keeps the previous voltage and current.
type ChargeTickResult struct {
	VoltageV float64
	CurrentA float64
	Changed  bool
}

// EclipsePhaseState classifies the eclipse phase on a tick.
type EclipsePhaseState int

const (
	// EclipseNoChange: phase outside (0,2], solar power is left alone.
	EclipseNoChange EclipsePhaseState = iota
	// EclipseActive: solar power follows the shadow profile.
	EclipseActive
	// EclipseEnded: the caller must clear the eclipse flag. Solar power
	// restoration is the eclipse setter's job, not the model's.
	EclipseEnded
)

type EclipseTickResult struct {
	SolarPowerW float64
	State       EclipsePhaseState
}
