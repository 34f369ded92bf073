package service

import (
	"math"

	"batsim2mqtt/internal/core/domain"
	"batsim2mqtt/internal/core/port"
)

// CosineEclipseModel shapes the solar power dip of an eclipse as a cosine:
// power decays from full to zero while the satellite enters shadow
// (phase 0..1) and recovers from zero back to full while it exits
// (phase 1..2). Past phase 2 the eclipse is over.
type CosineEclipseModel struct{}

func (m *CosineEclipseModel) SolarPower(elapsedSeconds, halfDurationSeconds, initialSolarPowerW float64) domain.EclipseTickResult {
	phase := elapsedSeconds / halfDurationSeconds
	switch {
	case phase > 0 && phase <= 1:
		return domain.EclipseTickResult{
			SolarPowerW: initialSolarPowerW * math.Cos(0.5*math.Pi*phase),
			State:       domain.EclipseActive,
		}
	case phase > 1 && phase <= 2:
		return domain.EclipseTickResult{
			SolarPowerW: -initialSolarPowerW * math.Cos(0.5*math.Pi*phase),
			State:       domain.EclipseActive,
		}
	case phase > 2:
		return domain.EclipseTickResult{State: domain.EclipseEnded}
	default:
		// phase <= 0 should not occur with a monotonic clock
		return domain.EclipseTickResult{State: domain.EclipseNoChange}
	}
}

// ensure interface compliance
var _ port.EclipseModel = (*CosineEclipseModel)(nil)
