package events

import (
	. "batsim2mqtt/internal/core/domain"
)

// Update-event builders. Each published quantity carries two decimals of
// numeric precision, matching the battery simulator records.

func SimulatedBatteryUpdateEvents(voltageV, currentA float64) []any {
	var events []any

	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_BATTERY_SIM_VOLTAGE,
		},
		Value:    voltageV,
		Decimals: PV_PRECISION,
	})
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_BATTERY_SIM_CURRENT,
		},
		Value:    currentA,
		Decimals: PV_PRECISION,
	})

	return events
}

func SolarPowerUpdateEvent(powerW float64) any {
	return FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_SOLAR_POWER,
		},
		Value:    powerW,
		Decimals: PV_PRECISION,
	}
}

func RealPackUpdateEvents(t *PackTelemetry) []any {
	var events []any

	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_BATTERY_REAL_VOLTAGE,
		},
		Value:    t.VoltageV,
		Decimals: PV_PRECISION,
	})
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_BATTERY_REAL_CURRENT,
		},
		Value:    t.CurrentA,
		Decimals: PV_PRECISION,
	})

	return events
}

func SimTimeUpdateEvent(simTimeSeconds float64) any {
	return FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_SIM_TIME,
		},
		Value:    simTimeSeconds,
		Decimals: 0,
	}
}

func TargetVoltageUpdateEvent(voltageV float64) any {
	return InputNumberSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: INPUT_NUMBER_ID_TARGET_VOLTAGE,
		},
		Value:    voltageV,
		Decimals: PV_PRECISION,
	}
}

func EclipseUpdateEvent(committed int) any {
	return SelectSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SELECT_ID_ECLIPSE,
		},
		Value: EclipseStateString(committed),
	}
}
