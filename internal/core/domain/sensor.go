package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/carlmjohnson/versioninfo"
)

const (
	SENSOR_ID_BRIDGE_STATE           = "bridge"
	SENSOR_ID_BATTERY_SIM_VOLTAGE    = "battery_sim_voltage"
	SENSOR_ID_BATTERY_SIM_CURRENT    = "battery_sim_current"
	SENSOR_ID_BATTERY_REAL_VOLTAGE   = "battery_real_voltage"
	SENSOR_ID_BATTERY_REAL_CURRENT   = "battery_real_current"
	SENSOR_ID_SOLAR_POWER            = "solar_power"
	SENSOR_ID_SIM_TIME               = "sim_time"
	SELECT_ID_ECLIPSE                = "eclipse"
	INPUT_NUMBER_ID_TARGET_VOLTAGE   = "battery_target_voltage"
	STATE_CLASS_MEASUREMENT          = "measurement"
	STATE_CLASS_TOTAL_INCREASING     = "total_increasing"
	DEVICE_CLASS_CURRENT             = "current"
	DEVICE_CLASS_DURATION            = "duration"
	DEVICE_CLASS_POWER               = "power"
	DEVICE_CLASS_VOLTAGE             = "voltage"
	DEVICE_CLASS_CONNECTIVITY        = "connectivity"
	ENTITY_CLASS_DIAGNOSTIC          = "diagnostic"
	SENSOR_TYPE_SENSOR               = "sensor"
	SENSOR_TYPE_BINARY               = "binary_sensor"
	INPUT_NUMBER_MODE_BOX            = "box"
	PV_PRECISION                uint = 2
)

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("batsim_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "ACasal",
		Model:        "BatSim",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("BatSim %s", md5HashShort(baseTopic)),
	}
}

func BatteryDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("batsim_battery_%s", md5HashShort(baseTopic)),
		Manufacturer: "ACasal",
		Model:        "Spacecraft battery simulator",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Spacecraft battery %s", md5HashShort(baseTopic)),
	}
}

func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

// BatterySensors describes the read-only published quantities: the simulated
// voltage/current, the solar power, the real passthrough channels and the
// simulated clock. Units and precision follow the battery simulator records.
func BatterySensors(batteryDevice Device) []GenericSensor {

	var sensors []GenericSensor

	// Simulated battery voltage
	sensors = append(sensors, GenericSensor{
		Device:            batteryDevice,
		Id:                SENSOR_ID_BATTERY_SIM_VOLTAGE,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Simulated battery voltage",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_VOLTAGE,
		UnitOfMeasurement: "V",
		UniqueId:          uniqueId(batteryDevice.Id, SENSOR_ID_BATTERY_SIM_VOLTAGE),
	})

	// Simulated battery current
	sensors = append(sensors, GenericSensor{
		Device:            batteryDevice,
		Id:                SENSOR_ID_BATTERY_SIM_CURRENT,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Simulated battery current",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_CURRENT,
		UnitOfMeasurement: "A",
		UniqueId:          uniqueId(batteryDevice.Id, SENSOR_ID_BATTERY_SIM_CURRENT),
	})

	// Solar array power
	sensors = append(sensors, GenericSensor{
		Device:            batteryDevice,
		Id:                SENSOR_ID_SOLAR_POWER,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Solar array power",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_POWER,
		UnitOfMeasurement: "W",
		Icon:              "mdi:solar-power",
		UniqueId:          uniqueId(batteryDevice.Id, SENSOR_ID_SOLAR_POWER),
	})

	// Real battery voltage (passthrough)
	sensors = append(sensors, GenericSensor{
		Device:            batteryDevice,
		Id:                SENSOR_ID_BATTERY_REAL_VOLTAGE,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Real battery voltage",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_VOLTAGE,
		UnitOfMeasurement: "V",
		EnabledByDefault:  optionalBool(false),
		UniqueId:          uniqueId(batteryDevice.Id, SENSOR_ID_BATTERY_REAL_VOLTAGE),
	})

	// Real battery current (passthrough)
	sensors = append(sensors, GenericSensor{
		Device:            batteryDevice,
		Id:                SENSOR_ID_BATTERY_REAL_CURRENT,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Real battery current",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_CURRENT,
		UnitOfMeasurement: "A",
		EnabledByDefault:  optionalBool(false),
		UniqueId:          uniqueId(batteryDevice.Id, SENSOR_ID_BATTERY_REAL_CURRENT),
	})

	// Simulated clock
	sensors = append(sensors, GenericSensor{
		Device:            batteryDevice,
		Id:                SENSOR_ID_SIM_TIME,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Simulated time",
		StateClass:        STATE_CLASS_TOTAL_INCREASING,
		DeviceClass:       DEVICE_CLASS_DURATION,
		UnitOfMeasurement: "s",
		EntityCategory:    ENTITY_CLASS_DIAGNOSTIC,
		EnabledByDefault:  optionalBool(false),
		UniqueId:          uniqueId(batteryDevice.Id, SENSOR_ID_SIM_TIME),
	})

	return sensors
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {

	var sensors []GenericSensor

	sensors = append(sensors, GenericSensor{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	})

	return sensors
}

// EclipseSelects describes the writable eclipse flag with its enumerated
// string representation.
func EclipseSelects(batteryDevice Device) []GenericSelect {

	var selects []GenericSelect

	selects = append(selects, GenericSelect{
		Device:   batteryDevice,
		Id:       SELECT_ID_ECLIPSE,
		Name:     "Eclipse",
		UniqueId: uniqueId(batteryDevice.Id, SELECT_ID_ECLIPSE),
		Icon:     "mdi:weather-night",
		Options:  []string{ECLIPSE_STATE_OFF, ECLIPSE_STATE_ON},
	})

	return selects
}

// TargetVoltageInputNumbers describes the writable target voltage.
func TargetVoltageInputNumbers(batteryDevice Device, maxVoltageV, initialV float64) []GenericInputNumber {

	var inputNumbers []GenericInputNumber

	inputNumbers = append(inputNumbers, GenericInputNumber{
		Device:       batteryDevice,
		Id:           INPUT_NUMBER_ID_TARGET_VOLTAGE,
		Name:         "Target battery voltage",
		UniqueId:     uniqueId(batteryDevice.Id, INPUT_NUMBER_ID_TARGET_VOLTAGE),
		Icon:         "mdi:battery-charging",
		Max:          maxVoltageV,
		Min:          0,
		Step:         0.1,
		Mode:         INPUT_NUMBER_MODE_BOX,
		InitialValue: initialV,
	})

	return inputNumbers
}

func uniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	hash := md5Hash(text)
	return hash[0:8]
}

func optionalBool(value bool) *bool {
	return &value
}
