package actor

import (
	"testing"
	"time"

	"batsim2mqtt/internal/adapter/probe"
	"batsim2mqtt/internal/core/domain"
	"batsim2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetPackTelemetryPackProbeActor(t *testing.T) {

	assert := assert.New(t)

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewPackProbeActor(probe.NewBenchPackProbe(), logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetPackTelemetryRequest{}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetPackTelemetryResponse)

	assert.False(resp.HasResponseError())
	assert.NotNil(resp.Telemetry)
	assert.Equal(34.02, resp.Telemetry.VoltageV, "pack voltage")
	assert.Equal(-0.24, resp.Telemetry.CurrentA, "pack current")

	context.Stop(pid)

	as.Shutdown()
}
