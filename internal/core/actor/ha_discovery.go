package actor

import (
	"errors"
	"fmt"
	"time"

	"batsim2mqtt/internal/config"
	"batsim2mqtt/internal/core/domain"
	"batsim2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type HADiscoveryActor struct {
	config           *config.Config
	params           domain.Parameters
	behavior         actor.Behavior
	stash            *actorutil.Stash
	mqttActor        *actor.PID
	mqttActorHealthy bool

	logger *zap.Logger
}

func NewHADiscoveryActor(config *config.Config, params domain.Parameters, mqttActor *actor.PID, logger *zap.Logger) *HADiscoveryActor {
	act := &HADiscoveryActor{
		config:    config,
		params:    params,
		mqttActor: mqttActor,
		behavior:  actor.NewBehavior(),
		stash:     &actorutil.Stash{},
		logger:    actorutil.ActorLogger(domain.ACTOR_ID_HA_DISCOVERY, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *HADiscoveryActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *HADiscoveryActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("hadiscovery@starting started")

		// check the MQTT actor is connected before announcing entities
		state.mqttActorHealthy = false
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.mqttActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		state.behavior.Become(state.WaitingHealthyReceive)
	case *actor.Restarting:
	default:
		state.logger.Debug("hadiscovery@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) WaitingHealthyReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthResponse:
		state.logger.Debug("hadiscovery@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		if msg.Id == domain.ACTOR_ID_MQTT && msg.Healthy {
			state.mqttActorHealthy = true
		}
		if !state.mqttActorHealthy {
			panic(errors.New("MQTT Actor is not healthy"))
		}
		state.publishDiscovery(ctx)
		state.behavior.Become(state.Done)
	default:
		state.logger.Debug("hadiscovery@healthcheck: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) Done(ctx actor.Context) {

}

func (state *HADiscoveryActor) publishDiscovery(ctx actor.Context) {
	var sensors []domain.GenericSensor
	var selects []domain.GenericSelect
	var inputNumbers []domain.GenericInputNumber

	bridgeDevice := domain.BridgeDevice(state.config.MQTT.BaseTopic)
	sensors = append(sensors, domain.BridgeSensors(bridgeDevice)...)

	batteryDevice := domain.BatteryDevice(state.config.MQTT.BaseTopic)
	batteryDevice.ViaDevice = bridgeDevice.Id
	batterySensors := domain.BatterySensors(batteryDevice)
	for i := range batterySensors {
		if i > 0 {
			batterySensors[i].Device = domain.IdDevice(batteryDevice)
		}
		sensors = append(sensors, batterySensors[i])
	}

	selects = append(selects, domain.EclipseSelects(domain.IdDevice(batteryDevice))...)
	inputNumbers = append(inputNumbers, domain.TargetVoltageInputNumbers(domain.IdDevice(batteryDevice),
		state.params.MaxVoltageV, state.config.SimulationConfig.InitialTargetVoltageV)...)

	ctx.Send(state.mqttActor, domain.PublishDiscoveryRequest{
		Sensors:      sensors,
		Selects:      selects,
		InputNumbers: inputNumbers,
	})
}
