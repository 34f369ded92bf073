package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TEST_NOMINAL_VOLTAGE = 34.0
	TEST_MODEL_CONSTANT  = 80.0
	TEST_DELTA_HOURS     = 1.0 / 3600.0
)

func testChargeModel() *ExpChargeModel {
	return &ExpChargeModel{
		NominalVoltageV: TEST_NOMINAL_VOLTAGE,
		ModelConstantWh: TEST_MODEL_CONSTANT,
	}
}

func TestChargingTick(t *testing.T) {

	require := require.New(t)

	m := testChargeModel()
	// 110 W solar - 100 W load = 10 W net
	res, err := m.Tick(32.0, 34.0, 10.0, TEST_DELTA_HOURS)
	require.NoError(err)
	require.True(res.Changed)

	expectedDeltaV := 10.0 * TEST_DELTA_HOURS * TEST_NOMINAL_VOLTAGE / (TEST_MODEL_CONSTANT * math.Exp(32.0/TEST_NOMINAL_VOLTAGE))
	assert.InDelta(t, 32.0+expectedDeltaV, res.VoltageV, 1e-9, "voltage advances by deltaV")
	assert.Equal(t, 0.0, res.CurrentA, "no current while charging")
}

func TestChargingClampsToTarget(t *testing.T) {

	require := require.New(t)

	m := testChargeModel()
	// a huge net power over a long step must not overshoot the target
	res, err := m.Tick(33.99, 34.0, 100000.0, 1.0)
	require.NoError(err)
	require.True(res.Changed)
	assert.Equal(t, 34.0, res.VoltageV, "voltage clamped to target")
	assert.Equal(t, 0.0, res.CurrentA)
}

func TestDischargingTick(t *testing.T) {

	require := require.New(t)

	m := testChargeModel()
	// 0 W solar - 100 W load = -100 W net
	res, err := m.Tick(32.0, 34.0, -100.0, TEST_DELTA_HOURS)
	require.NoError(err)
	require.True(res.Changed)

	expectedDeltaV := -100.0 * TEST_DELTA_HOURS * TEST_NOMINAL_VOLTAGE / (TEST_MODEL_CONSTANT * math.Exp(32.0/TEST_NOMINAL_VOLTAGE))
	assert.InDelta(t, 32.0+expectedDeltaV, res.VoltageV, 1e-9, "voltage decays by deltaV")
	assert.InDelta(t, -3.125, res.CurrentA, 1e-9, "current uses pre-update voltage")
}

func TestDischargingFloorsAtZero(t *testing.T) {

	require := require.New(t)

	m := testChargeModel()
	res, err := m.Tick(0.01, 34.0, -1000000.0, 1.0)
	require.NoError(err)
	require.True(res.Changed)
	assert.Equal(t, 0.0, res.VoltageV, "voltage floored at zero")
}

func TestDischargingPrecondition(t *testing.T) {

	m := testChargeModel()
	_, err := m.Tick(0.0, 34.0, -100.0, TEST_DELTA_HOURS)
	assert.ErrorIs(t, err, ErrModelPrecondition)
}

func TestZeroNetPowerRetainsState(t *testing.T) {

	require := require.New(t)

	m := testChargeModel()
	res, err := m.Tick(32.0, 34.0, 0.0, TEST_DELTA_HOURS)
	require.NoError(err)
	assert.False(t, res.Changed, "no change on zero net power")
	assert.Equal(t, 32.0, res.VoltageV)
}

func TestChargingAtTargetRetainsState(t *testing.T) {

	require := require.New(t)

	m := testChargeModel()
	res, err := m.Tick(34.0, 34.0, 10.0, TEST_DELTA_HOURS)
	require.NoError(err)
	assert.False(t, res.Changed, "no change once the target is reached")
}
