package actor

import (
	"fmt"
	"time"

	"batsim2mqtt/internal/config"
	"batsim2mqtt/internal/core/domain"
	"batsim2mqtt/internal/core/events"
	"batsim2mqtt/internal/core/port"
	. "batsim2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

// SimulationActor owns every simulated quantity. All reads and writes go
// through its mailbox, so a setter never races a tick.
type SimulationActor struct {
	ActorWithStates
	scheduler *scheduler.TimerScheduler
	stash     *Stash

	config         *config.Config
	params         domain.Parameters
	chargeModel    port.ChargeModel
	eclipseModel   port.EclipseModel
	packProbeActor *actor.PID
	eventStream    *eventstream.EventStream

	simTimeSeconds      float64
	voltageV            float64
	currentA            float64
	targetVoltageV      float64
	solarPowerW         float64
	initialSolarPowerW  float64
	eclipse             int
	eclipseOnsetSeconds float64
	realVoltageV        float64
	realCurrentA        float64
	ticksSinceRealPoll  uint

	logger *zap.Logger
}

type simulationTick struct {
}

func NewSimulationActor(config *config.Config, params domain.Parameters, chargeModel port.ChargeModel,
	eclipseModel port.EclipseModel, packProbeActor *actor.PID, eventStream *eventstream.EventStream,
	logger *zap.Logger) *SimulationActor {
	act := &SimulationActor{
		config:         config,
		params:         params,
		chargeModel:    chargeModel,
		eclipseModel:   eclipseModel,
		packProbeActor: packProbeActor,
		eventStream:    eventStream,
		stash:          &Stash{},
		logger:         ActorLogger(domain.ACTOR_ID_SIMULATION, logger),
		ActorWithStates: ActorWithStates{
			Behavior: actor.NewBehavior(),
		},
	}
	act.Become(SimStartingState{
		actor: act,
	})
	return act
}

func (state *SimulationActor) Receive(context actor.Context) {
	state.Behavior.Receive(context)
}

// Starting state

type SimStartingState struct {
	ActorState
	actor *SimulationActor
}

func (state SimStartingState) Name() string {
	return "starting"
}

func (state SimStartingState) Receive(ctx actor.Context) {
	a := state.actor
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.logger.Debug("simulation@starting started")

		sim := a.config.SimulationConfig
		a.simTimeSeconds = 0
		a.voltageV = sim.InitialVoltageV
		a.currentA = 0
		a.targetVoltageV = sim.InitialTargetVoltageV
		a.solarPowerW = sim.InitialSolarPowerW
		a.initialSolarPowerW = sim.InitialSolarPowerW
		a.eclipse = sim.InitialEclipse
		if a.eclipse == 1 {
			a.eclipseOnsetSeconds = a.simTimeSeconds
		}
		a.ticksSinceRealPoll = 0

		a.logger.Info("simulation loop started",
			zap.Float64("maxVoltage", a.params.MaxVoltageV),
			zap.Float64("voltage", a.voltageV),
			zap.Float64("targetVoltage", a.targetVoltageV),
			zap.Float64("solarPower", a.solarPowerW),
			zap.String("eclipse", domain.EclipseStateString(a.eclipse)))

		// publish initial values so subscribers start from a known state
		for _, ev := range events.SimulatedBatteryUpdateEvents(a.voltageV, a.currentA) {
			a.eventStream.Publish(ev)
		}
		a.eventStream.Publish(events.SolarPowerUpdateEvent(a.solarPowerW))
		a.eventStream.Publish(events.TargetVoltageUpdateEvent(a.targetVoltageV))
		a.eventStream.Publish(events.EclipseUpdateEvent(a.eclipse))
		a.eventStream.Publish(events.SimTimeUpdateEvent(a.simTimeSeconds))

		a.scheduler = scheduler.NewTimerScheduler(ctx)
		a.scheduler.RequestOnce(a.tickInterval(), ctx.Self(), simulationTick{})

		a.Become(SimRunningState{actor: a})
		a.stash.UnstashAll(ctx)
	case *actor.Restarting:
	default:
		a.logger.Debug("simulation@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		a.stash.Stash(ctx, msg)
	}
}

// Running state

type SimRunningState struct {
	ActorState
	actor *SimulationActor
}

func (state SimRunningState) Name() string {
	return "running"
}

func (state SimRunningState) Receive(ctx actor.Context) {
	a := state.actor
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		a.logger.Debug("simulation@running: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_SIMULATION,
			Healthy: true,
			State:   state.Name(),
		})
	case simulationTick:
		a.onTick(ctx)
	case domain.SetTargetVoltageRequest:
		committed := a.params.ClampTargetVoltage(msg.RequestedV)
		a.logger.Info("target voltage write",
			zap.Float64("requested", msg.RequestedV),
			zap.Float64("committed", committed))
		a.targetVoltageV = committed
		a.eventStream.Publish(events.TargetVoltageUpdateEvent(a.targetVoltageV))
		ForRequest(msg).Respond(ctx, domain.SetTargetVoltageResponse{
			CommittedV: committed,
		})
	case domain.SetEclipseRequest:
		in := domain.NormalizeEclipseInput(msg.Payload)
		if !in.Known {
			// reject and republish the committed state so remote UIs revert
			a.logger.Info("invalid eclipse write, keeping state",
				zap.String("payload", msg.Payload),
				zap.String("state", domain.EclipseStateString(a.eclipse)))
			a.eventStream.Publish(events.EclipseUpdateEvent(a.eclipse))
			ForRequest(msg).Respond(ctx, domain.SetEclipseResponse{
				Committed: a.eclipse,
				State:     domain.EclipseStateString(a.eclipse),
				Accepted:  false,
			})
			return
		}
		a.applyEclipse(in.Value)
		ForRequest(msg).Respond(ctx, domain.SetEclipseResponse{
			Committed: a.eclipse,
			State:     domain.EclipseStateString(a.eclipse),
			Accepted:  true,
		})
	case domain.GetPackTelemetryResponse:
		if msg.HasResponseError() {
			a.logger.Error("simulation@running pack telemetry error", zap.Error(msg.GetResponseError()))
			return
		}
		if msg.Telemetry != nil {
			a.realVoltageV = msg.Telemetry.VoltageV
			a.realCurrentA = msg.Telemetry.CurrentA
			for _, ev := range events.RealPackUpdateEvents(msg.Telemetry) {
				a.eventStream.Publish(ev)
			}
		}
	case domain.GetTelemetrySnapshotRequest:
		ctx.Respond(domain.GetTelemetrySnapshotResponse{
			SimTimeSeconds: a.simTimeSeconds,
			SimVoltageV:    a.voltageV,
			SimCurrentA:    a.currentA,
			TargetVoltageV: a.targetVoltageV,
			SolarPowerW:    a.solarPowerW,
			Eclipse:        a.eclipse,
			RealVoltageV:   a.realVoltageV,
			RealCurrentA:   a.realCurrentA,
			MaxVoltageV:    a.params.MaxVoltageV,
		})
	default:
		a.logger.Debug("simulation@running: ignore", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *SimulationActor) onTick(ctx actor.Context) {
	sim := state.config.SimulationConfig
	netPowerW := state.solarPowerW - state.params.LoadPowerW

	res, err := state.chargeModel.Tick(state.voltageV, state.targetVoltageV, netPowerW, sim.SimStepSeconds/3600.0)
	if err != nil {
		// model preconditions broken, the loop cannot continue
		state.logger.Error("charge model failed", zap.Error(err))
		panic(err)
	}
	if res.Changed {
		state.voltageV = res.VoltageV
		state.currentA = res.CurrentA
		for _, ev := range events.SimulatedBatteryUpdateEvents(state.voltageV, state.currentA) {
			state.eventStream.Publish(ev)
		}
	}

	if state.eclipse == 1 {
		elapsed := state.simTimeSeconds - state.eclipseOnsetSeconds
		er := state.eclipseModel.SolarPower(elapsed, sim.EclipseHalfDurationSeconds, state.initialSolarPowerW)
		switch er.State {
		case domain.EclipseActive:
			state.solarPowerW = er.SolarPowerW
			state.eventStream.Publish(events.SolarPowerUpdateEvent(state.solarPowerW))
		case domain.EclipseEnded:
			state.applyEclipse(0)
		}
	}

	state.ticksSinceRealPoll++
	if state.ticksSinceRealPoll >= sim.RealPollTicks {
		state.ticksSinceRealPoll = 0
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.packProbeActor, domain.GetPackTelemetryRequest{}, 1*time.Second), func(err error) any {
			return domain.GetPackTelemetryResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
	}

	state.simTimeSeconds += sim.SimStepSeconds
	state.eventStream.Publish(events.SimTimeUpdateEvent(state.simTimeSeconds))

	// schedule next tick
	state.scheduler.RequestOnce(state.tickInterval(), ctx.Self(), simulationTick{})
}

// applyEclipse commits a normalized eclipse value. Entering eclipse records
// the onset time; leaving it restores the pre-eclipse solar power.
func (state *SimulationActor) applyEclipse(value int) {
	if value == 1 && state.eclipse == 0 {
		state.eclipseOnsetSeconds = state.simTimeSeconds
		state.logger.Info("going into eclipse", zap.Float64("simTime", state.simTimeSeconds))
	} else if value == 0 && state.eclipse == 1 {
		state.solarPowerW = state.initialSolarPowerW
		state.eventStream.Publish(events.SolarPowerUpdateEvent(state.solarPowerW))
		state.logger.Info("reset to non-eclipse", zap.Float64("solarPower", state.solarPowerW))
	}
	state.eclipse = value
	state.eventStream.Publish(events.EclipseUpdateEvent(state.eclipse))
}

func (state *SimulationActor) tickInterval() time.Duration {
	return time.Duration(state.config.SimulationConfig.TickIntervalMillis) * time.Millisecond
}
