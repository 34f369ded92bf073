package actor

import (
	"testing"
	"time"

	"batsim2mqtt/internal/core/domain"
	"batsim2mqtt/internal/util"
	"batsim2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMQTTActor(t *testing.T) {

	cfg := util.LoadTestConfig()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewTestMQTTActor(&cfg, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.ActorHealthRequest{}
	result, err := context.RequestFuture(pid, msg, 2*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp, ok := result.(domain.ActorHealthResponse)
	assert.True(t, ok)
	assert.NotNil(t, resp)
	assert.True(t, resp.Healthy)

	// fire and forget, the dummy actor swallows publishes
	context.Send(pid, domain.PublishSensorUpdateRequest{
		Event: domain.FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{
				Id: domain.SENSOR_ID_BATTERY_SIM_VOLTAGE,
			},
			Value:    32.45,
			Decimals: domain.PV_PRECISION,
		},
	})

	time.Sleep(500 * time.Millisecond)

	context.Stop(pid)

	time.Sleep(500 * time.Millisecond)

	as.Shutdown()
}
