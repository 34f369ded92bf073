package actor

import (
	"errors"
	"fmt"
	"log"
	"time"

	adactor "batsim2mqtt/internal/adapter/actor"
	"batsim2mqtt/internal/config"
	"batsim2mqtt/internal/core/domain"
	"batsim2mqtt/internal/core/port"
	"batsim2mqtt/internal/core/service"
	. "batsim2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"go.uber.org/zap"
)

type MQTTActorProvider func(*eventstream.EventStream) *adactor.MQTTActor

type PackProbeActorProvider func() *adactor.PackProbeActor

// MasterOfPuppetsActor spawns and supervises the actor tree: the pack probe,
// the MQTT bridge, the simulation loop and optionally HA discovery.
type MasterOfPuppetsActor struct {
	config   config.Config
	params   domain.Parameters
	behavior actor.Behavior
	stash    *Stash

	currentHealthCheck     healthCheckResult
	eventStream            *eventstream.EventStream
	packProbeActor         *actor.PID
	mqttActor              *actor.PID
	simulationActor        *actor.PID
	packProbeActorProvider PackProbeActorProvider
	mqttActorProvider      MQTTActorProvider
	logger                 *zap.Logger
}

type healthCheckResult struct {
	packProbeActorHealthy  bool
	mqttActorHealthy       bool
	simulationActorHealthy bool
	checksReceived         int
	respondTo              *actor.PID
}

func NewMasterOfPuppetsActor(config config.Config, params domain.Parameters, packProbeActorProvider PackProbeActorProvider,
	mqttActorProvider MQTTActorProvider, logger *zap.Logger) *MasterOfPuppetsActor {
	act := &MasterOfPuppetsActor{
		config:                 config,
		params:                 params,
		behavior:               actor.NewBehavior(),
		stash:                  &Stash{},
		logger:                 ActorLogger(domain.ACTOR_ID_MASTER, logger),
		eventStream:            &eventstream.EventStream{},
		packProbeActorProvider: packProbeActorProvider,
		mqttActorProvider:      mqttActorProvider,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *MasterOfPuppetsActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *MasterOfPuppetsActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("master@starting started")

		state.currentHealthCheck = healthCheckResult{}
		state.currentHealthCheck.reset()

		// start PackProbe child
		packProbeActorPID, err := state.startPackProbeActor(ctx)
		if err != nil {
			panic(err)
		}
		state.packProbeActor = packProbeActorPID

		// start MQTT child
		mqttActorPID, err := state.startMQTTActor(ctx)
		if err != nil {
			panic(err)
		}
		state.mqttActor = mqttActorPID

		// start Simulation child
		simulationActorPID, err := state.startSimulationActor(ctx)
		if err != nil {
			panic(err)
		}
		state.simulationActor = simulationActorPID

		// start HA Discovery
		if state.config.MQTT.HADiscoveryEnable {
			_, err := state.startHADiscoveryActor(ctx)
			if err != nil {
				panic(err)
			}
		}

		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("master@starting stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MasterOfPuppetsActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("master@default ActorHealthRequest")
		state.currentHealthCheck.reset()
		state.currentHealthCheck.respondTo = ctx.Sender()
		// PackProbe Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.packProbeActor, domain.ActorHealthRequest{}, 500*time.Millisecond), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_PACK_PROBE,
				Healthy: false,
			}
		})
		// MQTT Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.mqttActor, domain.ActorHealthRequest{}, 500*time.Millisecond), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		// Simulation Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.simulationActor, domain.ActorHealthRequest{}, 500*time.Millisecond), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_SIMULATION,
				Healthy: false,
			}
		})

		ctx.SetReceiveTimeout(1 * time.Second)

		state.behavior.BecomeStacked(state.HealthCheckReceive)
	case domain.GetTelemetrySnapshotRequest:
		// redirect to simulation actor, keeping the original sender
		ctx.RequestWithCustomSender(state.simulationActor, msg, ctx.Sender())
	case adactor.ParsedCommand:
		// redirect parsedCommand to actor
		state.logger.Debug("master@default parsedCommand", zap.Any("command", msg.Command))
		if msg.Command != nil {
			cmd, err := ParsedMQTTCommandToCommand(*msg.Command)
			if err == nil && cmd != nil {
				switch pcmd := cmd.(type) {
				case domain.SimControlRequest:
					ctx.Send(state.simulationActor, pcmd)
				}
			}
		}
	case *actor.Terminated:
		// if some actor fails on boot, terminate
		if msg.Who.Id == fmt.Sprintf("%s/%s", domain.ACTOR_ID_MASTER, domain.ACTOR_ID_PACK_PROBE) {
			state.logger.Error("master@default packprobe error")
			panic(errors.New("packprobe terminated"))
		}
	default:
		state.logger.Debug("master@default stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MasterOfPuppetsActor) HealthCheckReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.ReceiveTimeout:
		// if some actor does not respond to healthCheck, assume not healthy
		state.currentHealthCheck.respond(ctx)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case domain.ActorHealthResponse:
		state.logger.Debug("master@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.currentHealthCheck.checksReceived++
		if msg.Healthy {
			if msg.Id == domain.ACTOR_ID_PACK_PROBE {
				state.currentHealthCheck.packProbeActorHealthy = true
			} else if msg.Id == domain.ACTOR_ID_MQTT {
				state.currentHealthCheck.mqttActorHealthy = true
			} else if msg.Id == domain.ACTOR_ID_SIMULATION {
				state.currentHealthCheck.simulationActorHealthy = true
			}
		}
		if state.currentHealthCheck.allReceived() {

			state.currentHealthCheck.respond(ctx)

			state.behavior.UnbecomeStacked()
			state.stash.UnstashAll(ctx)
		} else {
			ctx.SetReceiveTimeout(1 * time.Second)
		}
	default:
		state.logger.Debug("master@healthcheck stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MasterOfPuppetsActor) startPackProbeActor(ctx actor.Context) (*actor.PID, error) {

	supervisor := actor.NewExponentialBackoffStrategy(10*time.Second, 1*time.Second)

	packProbeProps := actor.PropsFromProducer(func() actor.Actor {
		return state.packProbeActorProvider()
	}, actor.WithSupervisor(supervisor))
	packProbeActorPID, err := ctx.SpawnNamed(packProbeProps, domain.ACTOR_ID_PACK_PROBE)
	if err != nil {
		return nil, err
	}

	return packProbeActorPID, nil
}

func (state *MasterOfPuppetsActor) startMQTTActor(ctx actor.Context) (*actor.PID, error) {

	supervisor := actor.NewExponentialBackoffStrategy(10*time.Second, 1*time.Second)

	mqttProps := actor.PropsFromProducer(func() actor.Actor {
		return state.mqttActorProvider(state.eventStream)
	}, actor.WithSupervisor(supervisor))
	mqttActorPID, err := ctx.SpawnNamed(mqttProps, domain.ACTOR_ID_MQTT)
	if err != nil {
		return nil, err
	}

	return mqttActorPID, nil
}

func (state *MasterOfPuppetsActor) startSimulationActor(ctx actor.Context) (*actor.PID, error) {

	decider := func(reason interface{}) actor.Directive {
		log.Printf("handling failure for child. reason: %v", reason)
		return actor.RestartDirective
	}
	supervisor := actor.NewOneForOneStrategy(1, 10*time.Second, decider)

	var chargeModel port.ChargeModel = &service.ExpChargeModel{
		NominalVoltageV: state.params.NominalVoltageV,
		ModelConstantWh: state.params.ModelConstantWh,
	}
	var eclipseModel port.EclipseModel = &service.CosineEclipseModel{}

	simulationProps := actor.PropsFromProducer(func() actor.Actor {
		return NewSimulationActor(&state.config, state.params, chargeModel, eclipseModel,
			state.packProbeActor, state.eventStream, state.logger)
	}, actor.WithSupervisor(supervisor))
	simulationActorPID, err := ctx.SpawnNamed(simulationProps, domain.ACTOR_ID_SIMULATION)
	if err != nil {
		return nil, err
	}

	return simulationActorPID, nil
}

func (state *MasterOfPuppetsActor) startHADiscoveryActor(ctx actor.Context) (*actor.PID, error) {

	decider := func(reason interface{}) actor.Directive {
		log.Printf("handling failure for child. reason: %v", reason)
		return actor.RestartDirective
	}
	supervisor := actor.NewOneForOneStrategy(1, 10*time.Second, decider)

	haDiscProps := actor.PropsFromProducer(func() actor.Actor {
		return NewHADiscoveryActor(&state.config, state.params, state.mqttActor, state.logger)
	}, actor.WithSupervisor(supervisor))
	haDiscPID, err := ctx.SpawnNamed(haDiscProps, domain.ACTOR_ID_HA_DISCOVERY)
	if err != nil {
		return nil, err
	}

	return haDiscPID, nil
}

func (state *healthCheckResult) reset() {
	state.packProbeActorHealthy = false
	state.mqttActorHealthy = false
	state.simulationActorHealthy = false
	state.checksReceived = 0
}

func (state *healthCheckResult) allReceived() bool {
	return state.checksReceived == 3
}

func (state *healthCheckResult) allHealthy() bool {
	return state.packProbeActorHealthy && state.mqttActorHealthy && state.simulationActorHealthy
}

func (state *healthCheckResult) respond(ctx actor.Context) {
	resp := domain.ActorHealthResponse{
		Id:      domain.ACTOR_ID_MASTER,
		Healthy: state.allHealthy(),
	}
	if state.respondTo != nil {
		ctx.Send(state.respondTo, resp)
	}
}
