package actor

import (
	"errors"
	"testing"
	"time"

	adactor "batsim2mqtt/internal/adapter/actor"
	"batsim2mqtt/internal/adapter/probe"
	"batsim2mqtt/internal/core/domain"
	"batsim2mqtt/internal/core/service"
	"batsim2mqtt/internal/util"
	"batsim2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSimulationActorFlow(t *testing.T) {

	require := require.New(t)

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	cfg := util.LoadTestConfig()
	cfg.SimulationConfig.TickIntervalMillis = 10
	cfg.SimulationConfig.RealPollTicks = 2

	params := domain.NewParameters(cfg.BatteryConfig.CapacityWh, cfg.BatteryConfig.NominalVoltageV,
		cfg.BatteryConfig.ModelConstantWh, cfg.BatteryConfig.SolarPowerMaxW, cfg.BatteryConfig.LoadPowerW)

	es := &eventstream.EventStream{}

	// packprobe actor
	packProbeProps := actor.PropsFromProducer(func() actor.Actor {
		return adactor.NewPackProbeActor(probe.NewBenchPackProbe(), logger)
	})
	packProbePID := context.Spawn(packProbeProps)

	// simulation actor
	simProps := actor.PropsFromProducer(func() actor.Actor {
		return NewSimulationActor(&cfg, params, &service.ExpChargeModel{
			NominalVoltageV: params.NominalVoltageV,
			ModelConstantWh: params.ModelConstantWh,
		}, &service.CosineEclipseModel{}, packProbePID, es, logger)
	})
	simPID := context.Spawn(simProps)

	time.Sleep(500 * time.Millisecond)

	hcr, err := healthCheck(context, simPID)
	require.NoError(err)
	assert.True(t, hcr.Healthy, "actor should be healthy")
	assert.Equal(t, "running", hcr.State, "actor state should be running")

	// the loop must be charging toward the target and polling the real pack
	snap, err := telemetrySnapshot(context, simPID)
	require.NoError(err)
	assert.Greater(t, snap.SimTimeSeconds, 0.0, "sim time advances")
	assert.Greater(t, snap.SimVoltageV, cfg.SimulationConfig.InitialVoltageV, "battery is charging")
	assert.Equal(t, 0.0, snap.SimCurrentA, "no current while charging")
	assert.Equal(t, 110.0, snap.SolarPowerW, "solar power untouched outside eclipse")
	assert.Equal(t, 34.02, snap.RealVoltageV, "real pack voltage polled")
	assert.Equal(t, -0.24, snap.RealCurrentA, "real pack current polled")
	assert.InDelta(t, params.MaxVoltageV, snap.MaxVoltageV, 1e-9)

	// target voltage writes are clamped to [0, Vmax]
	res, err := context.RequestFuture(simPID, domain.SetTargetVoltageRequest{RequestedV: 100.0}, 2*time.Second).Result()
	require.NoError(err)
	tvResp, ok := res.(domain.SetTargetVoltageResponse)
	require.True(ok)
	assert.Equal(t, params.MaxVoltageV, tvResp.CommittedV, "target clamped to max voltage")

	res, err = context.RequestFuture(simPID, domain.SetTargetVoltageRequest{RequestedV: -5.0}, 2*time.Second).Result()
	require.NoError(err)
	tvResp, ok = res.(domain.SetTargetVoltageResponse)
	require.True(ok)
	assert.Equal(t, 0.0, tvResp.CommittedV, "target clamped to zero")

	// a valid eclipse write flips the flag
	res, err = context.RequestFuture(simPID, domain.SetEclipseRequest{Payload: "Eclipse"}, 2*time.Second).Result()
	require.NoError(err)
	ecResp, ok := res.(domain.SetEclipseResponse)
	require.True(ok)
	assert.True(t, ecResp.Accepted)
	assert.Equal(t, 1, ecResp.Committed)
	assert.Equal(t, "Eclipse", ecResp.State)

	// solar power starts to dip once the eclipse is active
	time.Sleep(200 * time.Millisecond)
	snap, err = telemetrySnapshot(context, simPID)
	require.NoError(err)
	assert.Equal(t, 1, snap.Eclipse)
	assert.Less(t, snap.SolarPowerW, 110.0, "solar power dips during eclipse")

	// an invalid write keeps the committed state
	res, err = context.RequestFuture(simPID, domain.SetEclipseRequest{Payload: "bogus"}, 2*time.Second).Result()
	require.NoError(err)
	ecResp, ok = res.(domain.SetEclipseResponse)
	require.True(ok)
	assert.False(t, ecResp.Accepted)
	assert.Equal(t, 1, ecResp.Committed, "committed state unchanged")
	assert.Equal(t, "Eclipse", ecResp.State)

	// a numeric write clears the flag and restores solar power
	res, err = context.RequestFuture(simPID, domain.SetEclipseRequest{Payload: "0"}, 2*time.Second).Result()
	require.NoError(err)
	ecResp, ok = res.(domain.SetEclipseResponse)
	require.True(ok)
	assert.True(t, ecResp.Accepted)
	assert.Equal(t, 0, ecResp.Committed)
	assert.Equal(t, "Non-Eclipse", ecResp.State)

	snap, err = telemetrySnapshot(context, simPID)
	require.NoError(err)
	assert.Equal(t, 0, snap.Eclipse)
	assert.Equal(t, 110.0, snap.SolarPowerW, "solar power restored after eclipse")

	context.Stop(simPID)
	context.Stop(packProbePID)

	as.Shutdown()
}

func healthCheck(ctx *actor.RootContext, pid *actor.PID) (*domain.ActorHealthResponse, error) {
	resp, err := ctx.RequestFuture(pid, domain.ActorHealthRequest{}, 2*time.Second).Result()
	if err != nil {
		return nil, err
	}
	hcr, ok := resp.(domain.ActorHealthResponse)
	if !ok {
		return nil, errors.New("unexpected response type")
	}
	return &hcr, nil
}

func telemetrySnapshot(ctx *actor.RootContext, pid *actor.PID) (*domain.GetTelemetrySnapshotResponse, error) {
	resp, err := ctx.RequestFuture(pid, domain.GetTelemetrySnapshotRequest{}, 2*time.Second).Result()
	if err != nil {
		return nil, err
	}
	snap, ok := resp.(domain.GetTelemetrySnapshotResponse)
	if !ok {
		return nil, errors.New("unexpected response type")
	}
	return &snap, nil
}
