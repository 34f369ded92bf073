package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testParameters() Parameters {
	return NewParameters(150, 34, 80, 150, 100)
}

func TestMaxVoltage(t *testing.T) {

	p := testParameters()
	// Vmax = ln(capacity/K + 1) * Vn
	assert.InDelta(t, math.Log(150.0/80.0+1)*34.0, p.MaxVoltageV, 1e-9)
}

func TestValidateDefaults(t *testing.T) {

	p := testParameters()

	assert.NoError(t, p.Validate(Defaults{SimVoltageV: 32, TargetVoltageV: 34, SolarPowerW: 110, Eclipse: 0}))
	assert.NoError(t, p.Validate(Defaults{SimVoltageV: 0, TargetVoltageV: 0, SolarPowerW: 0, Eclipse: 1}))

	assert.Error(t, p.Validate(Defaults{SimVoltageV: -1, TargetVoltageV: 34, SolarPowerW: 110}))
	assert.Error(t, p.Validate(Defaults{SimVoltageV: p.MaxVoltageV + 0.1, TargetVoltageV: 34, SolarPowerW: 110}))
	assert.Error(t, p.Validate(Defaults{SimVoltageV: 32, TargetVoltageV: p.MaxVoltageV + 0.1, SolarPowerW: 110}))
	assert.Error(t, p.Validate(Defaults{SimVoltageV: 32, TargetVoltageV: 34, SolarPowerW: 151}))
	assert.Error(t, p.Validate(Defaults{SimVoltageV: 32, TargetVoltageV: 34, SolarPowerW: -1}))
	assert.Error(t, p.Validate(Defaults{SimVoltageV: 32, TargetVoltageV: 34, SolarPowerW: 110, Eclipse: 2}))
}

func TestClampTargetVoltage(t *testing.T) {

	p := testParameters()

	assert.Equal(t, 34.0, p.ClampTargetVoltage(34.0))
	assert.Equal(t, 0.0, p.ClampTargetVoltage(-5.0))
	assert.Equal(t, p.MaxVoltageV, p.ClampTargetVoltage(100.0))
}
