package util

import (
	"batsim2mqtt/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		MQTT: config.MQTTConfig{
			Host:             "localhost",
			Port:             1883,
			BaseTopic:        "batsim",
			HADiscoveryTopic: "homeassistant",
		},
		BatteryConfig: config.BatteryConfig{
			CapacityWh:      150,
			NominalVoltageV: 34,
			ModelConstantWh: 80,
			SolarPowerMaxW:  150,
			LoadPowerW:      100,
		},
		SimulationConfig: config.SimulationConfig{
			TickIntervalMillis:         100,
			SimStepSeconds:             1,
			EclipseHalfDurationSeconds: 3600,
			RealPollTicks:              10,
			InitialVoltageV:            32.0,
			InitialTargetVoltageV:      34.0,
			InitialSolarPowerW:         110.0,
			InitialEclipse:             0,
		},
		Port: 8080,
	}
}
