package service

import (
	"math"
	"testing"

	"batsim2mqtt/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestEclipseEntryProfile(t *testing.T) {

	m := &CosineEclipseModel{}

	// halfway into the shadow, power is initial*cos(pi/4)
	res := m.SolarPower(1800, 3600, 110.0)
	assert.Equal(t, domain.EclipseActive, res.State)
	assert.InDelta(t, 110.0*math.Cos(0.25*math.Pi), res.SolarPowerW, 1e-9)
}

func TestEclipseDeepestPoint(t *testing.T) {

	m := &CosineEclipseModel{}

	// the profile is continuous at phase 1: power reaches zero
	res := m.SolarPower(3600, 3600, 110.0)
	assert.Equal(t, domain.EclipseActive, res.State)
	assert.InDelta(t, 0.0, res.SolarPowerW, 1e-9)
}

func TestEclipseExitProfile(t *testing.T) {

	m := &CosineEclipseModel{}

	// halfway out of the shadow, power recovers to initial*cos(pi/4)
	res := m.SolarPower(5400, 3600, 110.0)
	assert.Equal(t, domain.EclipseActive, res.State)
	assert.InDelta(t, 110.0*math.Cos(0.25*math.Pi), res.SolarPowerW, 1e-9)
}

func TestEclipseFullRecovery(t *testing.T) {

	m := &CosineEclipseModel{}

	// at phase 2 the recovered power equals the initial power
	res := m.SolarPower(7200, 3600, 110.0)
	assert.Equal(t, domain.EclipseActive, res.State)
	assert.InDelta(t, 110.0, res.SolarPowerW, 1e-9)
}

func TestEclipseEnded(t *testing.T) {

	m := &CosineEclipseModel{}

	res := m.SolarPower(7201, 3600, 110.0)
	assert.Equal(t, domain.EclipseEnded, res.State)
}

func TestEclipseZeroElapsed(t *testing.T) {

	m := &CosineEclipseModel{}

	res := m.SolarPower(0, 3600, 110.0)
	assert.Equal(t, domain.EclipseNoChange, res.State)
}
