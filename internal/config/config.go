package config

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel zapcore.Level
	MQTT     MQTTConfig `mapstructure:"mqtt"`

	BatteryConfig    BatteryConfig    `mapstructure:"battery"`
	SimulationConfig SimulationConfig `mapstructure:"simulation"`
	Port             uint             `mapstructure:"port"`
	HttpLog          bool             `mapstructure:"http_log"`
}

type BatteryConfig struct {
	CapacityWh      float64 `mapstructure:"capacity_wh"`
	NominalVoltageV float64 `mapstructure:"nominal_voltage_v"`
	ModelConstantWh float64 `mapstructure:"model_constant_wh"`
	SolarPowerMaxW  float64 `mapstructure:"solar_power_max_w"`
	LoadPowerW      float64 `mapstructure:"load_power_w"`
}

type SimulationConfig struct {
	TickIntervalMillis         uint32  `mapstructure:"tick_interval_millis"`
	SimStepSeconds             float64 `mapstructure:"sim_step_seconds"`
	EclipseHalfDurationSeconds float64 `mapstructure:"eclipse_half_duration_seconds"`
	RealPollTicks              uint    `mapstructure:"real_poll_ticks"`
	InitialVoltageV            float64 `mapstructure:"initial_voltage_v"`
	InitialTargetVoltageV      float64 `mapstructure:"initial_target_voltage_v"`
	InitialSolarPowerW         float64 `mapstructure:"initial_solar_power_w"`
	InitialEclipse             int     `mapstructure:"initial_eclipse"`
}

type MQTTConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	BaseTopic         string `mapstructure:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic"`
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}
