package actorutil

import (
	"log/slog"
	"strconv"
	"time"

	"batsim2mqtt/internal/core/domain"
	"batsim2mqtt/internal/mqtt"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
	"go.uber.org/zap"
)

func PipeToSelfWithRecover(ctx actor.Context, future *actor.Future, mapFn func(error) any) {
	ctx.ReenterAfter(future, func(msg any, err error) {
		if err != nil {
			ctx.Send(ctx.Self(), mapFn(err))
			return
		}
		ctx.Send(ctx.Self(), msg)
	})
}

func NewActorSystemWithZapLogger(logger *zap.Logger) *actor.ActorSystem {
	stdOutLogger := zap.NewStdLog(logger)

	var slogLevel slog.Level = slog.LevelInfo

	switch logger.Level() {
	case zap.DebugLevel:
		slogLevel = slog.LevelDebug
	case zap.InfoLevel:
		slogLevel = slog.LevelInfo
	case zap.WarnLevel:
		slogLevel = slog.LevelWarn
	case zap.ErrorLevel:
		slogLevel = slog.LevelError
	case zap.PanicLevel:
		slogLevel = slog.LevelError
	}

	return actor.NewActorSystem(actor.WithLoggerFactory(func(system *actor.ActorSystem) *slog.Logger {

		// create a new logger
		return slog.New(tint.NewHandler(stdOutLogger.Writer(), &tint.Options{
			Level:      slogLevel,
			TimeFormat: time.DateTime,
		}))
	}))
}

func ActorLogger(actorName string, logger *zap.Logger) *zap.Logger {
	return logger.With(zap.String("actor", actorName))
}

// ParsedMQTTCommandToCommand maps an external write request to the validated
// setter command that handles it. Eclipse payloads are forwarded raw so the
// setter normalizes and rejects uniformly; number payloads were already
// parse-checked by the MQTT command parser.
func ParsedMQTTCommandToCommand(cmd mqtt.ParsedMQTTCommand) (domain.ActorRequest, error) {
	switch cmd.DeviceId {
	case domain.INPUT_NUMBER_ID_TARGET_VOLTAGE:
		value, err := strconv.ParseFloat(cmd.Payload, 64)
		if err != nil {
			return nil, err
		}
		return domain.SetTargetVoltageRequest{
			RequestedV: value,
		}, nil
	case domain.SELECT_ID_ECLIPSE:
		return domain.SetEclipseRequest{
			Payload: cmd.Payload,
		}, nil
	}
	return nil, nil
}
