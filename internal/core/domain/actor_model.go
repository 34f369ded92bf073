package domain

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_PACK_PROBE   = "packprobe"
	ACTOR_ID_SIMULATION   = "simulation"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

type GetPackTelemetryRequest struct {
	ActorRequestMixIn
}

type GetPackTelemetryResponse struct {
	ActorResponseMixIn
	Telemetry *PackTelemetry
}

// GetTelemetrySnapshotRequest asks the simulation actor for the currently
// committed values of every published quantity.
type GetTelemetrySnapshotRequest struct {
	ActorRequestMixIn
}

type GetTelemetrySnapshotResponse struct {
	ActorResponseMixIn
	SimTimeSeconds float64
	SimVoltageV    float64
	SimCurrentA    float64
	TargetVoltageV float64
	SolarPowerW    float64
	Eclipse        int
	RealVoltageV   float64
	RealCurrentA   float64
	MaxVoltageV    float64
}

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors      []GenericSensor
	Selects      []GenericSelect
	InputNumbers []GenericInputNumber
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
