package actor

import (
	"fmt"
	"time"

	"batsim2mqtt/internal/core/domain"
	"batsim2mqtt/internal/core/port"
	"batsim2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/reugn/go-quartz/logger"
	"go.uber.org/zap"
)

// PackProbeActor serializes access to the real battery channels. Readings are
// taken on a background task so a slow probe never blocks the mailbox.
type PackProbeActor struct {
	behavior actor.Behavior
	stash    *actorutil.Stash
	probe    port.PackProbe
	logger   *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewPackProbeActor(probe port.PackProbe, logger *zap.Logger) *PackProbeActor {
	act := &PackProbeActor{
		probe:    probe,
		behavior: actor.NewBehavior(),
		stash:    &actorutil.Stash{},
		logger:   actorutil.ActorLogger(domain.ACTOR_ID_PACK_PROBE, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *PackProbeActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *PackProbeActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("packprobe@starting started")
		if state.probe != nil {
			err := state.probe.Open()
			if err != nil {
				panic(err)
			}
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.probe.Close()
	default:
		state.logger.Debug("packprobe@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PackProbeActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("packprobe@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_PACK_PROBE,
			Healthy: true,
			State:   "idle",
		})
	case domain.GetPackTelemetryRequest:
		state.logger.Debug("packprobe@default: GetPackTelemetryRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.readPack),
			mapTaskResult[domain.GetPackTelemetryResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetPackTelemetryResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(2 * time.Second).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingProbe)
	case *actor.Stopping:
		state.probe.Close()
	default:
		state.logger.Debug("packprobe@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *PackProbeActor) WaitingProbe(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("packprobe@waitingProbe backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case *actor.Stopping:
		state.probe.Close()
	default:
		state.logger.Debug("packprobe@waitingProbe stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *PackProbeActor) readPack() (*domain.GetPackTelemetryResponse, error) {
	var telemetry *domain.PackTelemetry
	var err error

	if a.probe != nil {
		telemetry, err = a.probe.Read()
		if err != nil {
			logger.Error(err)
			return nil, err
		}
	}
	return &domain.GetPackTelemetryResponse{
		Telemetry: telemetry,
	}, nil
}

func mapTaskResult[T any](replyTo *actor.PID) func(*T) *backgroundTaskResult {
	return func(value *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *value,
			replyTo: replyTo,
		}
	}
}
