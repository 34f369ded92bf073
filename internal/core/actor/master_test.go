package actor

import (
	"fmt"
	"testing"
	"time"

	adactor "batsim2mqtt/internal/adapter/actor"
	"batsim2mqtt/internal/adapter/probe"
	"batsim2mqtt/internal/core/domain"
	"batsim2mqtt/internal/util"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMasterActor(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	params := domain.NewParameters(cfg.BatteryConfig.CapacityWh, cfg.BatteryConfig.NominalVoltageV,
		cfg.BatteryConfig.ModelConstantWh, cfg.BatteryConfig.SolarPowerMaxW, cfg.BatteryConfig.LoadPowerW)

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, params, func() *adactor.PackProbeActor {
			return adactor.NewPackProbeActor(probe.NewBenchPackProbe(), logger)
		}, func(es *eventstream.EventStream) *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, logger)
		}, logger)
	})
	pid, err := context.SpawnNamed(props, "master")
	if err != nil {
		t.Error(err)
		return
	}

	time.Sleep(2 * time.Second)

	res, err := context.RequestFuture(pid, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		//return
	}
	healthResp, ok := res.(domain.ActorHealthResponse)
	assert.True(t, ok)
	fmt.Printf("Health response: %+v\n", healthResp)
	assert.NotNil(t, healthResp)

	assert.True(t, healthResp.Healthy, "healthy is true")

	// snapshot requests are forwarded to the simulation loop
	res, err = context.RequestFuture(pid, domain.GetTelemetrySnapshotRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	snap, ok := res.(domain.GetTelemetrySnapshotResponse)
	assert.True(t, ok)
	assert.Greater(t, snap.SimTimeSeconds, 0.0, "sim time advances")

	context.Stop(pid)

	as.Shutdown()
}
