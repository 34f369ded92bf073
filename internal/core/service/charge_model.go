package service

import (
	"errors"
	"math"

	"batsim2mqtt/internal/core/domain"
	"batsim2mqtt/internal/core/port"
)

// ErrModelPrecondition is returned when a non-positive voltage reaches the
// discharge branch. It is a logic fault, not a user error: the control loop
// must treat it as fatal.
var ErrModelPrecondition = errors.New("charge model: non-positive voltage in discharge branch")

// ExpChargeModel implements the exponential battery model
// Energy = K * (exp(V/Vn) - 1). Both charge and discharge move the voltage by
//
//	deltaV = netPower * deltaT * Vn / (K * exp(V/Vn))
//
// with the sign following the net power.
type ExpChargeModel struct {
	NominalVoltageV float64
	ModelConstantWh float64
}

func (m *ExpChargeModel) Tick(voltageV, targetVoltageV, netPowerW, deltaHours float64) (domain.ChargeTickResult, error) {
	switch {
	case netPowerW > 0 && voltageV < targetVoltageV:
		// charging
		nextV := voltageV + m.deltaV(voltageV, netPowerW, deltaHours)
		return domain.ChargeTickResult{
			VoltageV: math.Min(nextV, targetVoltageV),
			CurrentA: 0,
			Changed:  true,
		}, nil
	case netPowerW < 0:
		// discharging. The pre-update voltage is the denominator.
		if voltageV <= 0 {
			return domain.ChargeTickResult{}, ErrModelPrecondition
		}
		nextV := voltageV + m.deltaV(voltageV, netPowerW, deltaHours)
		return domain.ChargeTickResult{
			VoltageV: math.Max(nextV, 0),
			CurrentA: netPowerW / voltageV,
			Changed:  true,
		}, nil
	default:
		// zero net power, or charging with voltage already at the target:
		// prior voltage and current are retained
		return domain.ChargeTickResult{VoltageV: voltageV, Changed: false}, nil
	}
}

func (m *ExpChargeModel) deltaV(voltageV, netPowerW, deltaHours float64) float64 {
	return netPowerW * deltaHours * m.NominalVoltageV / (m.ModelConstantWh * math.Exp(voltageV/m.NominalVoltageV))
}

// ensure interface compliance
var _ port.ChargeModel = (*ExpChargeModel)(nil)
