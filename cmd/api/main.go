package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adactor "batsim2mqtt/internal/adapter/actor"
	"batsim2mqtt/internal/adapter/probe"
	"batsim2mqtt/internal/config"
	"batsim2mqtt/internal/core/actor"
	"batsim2mqtt/internal/core/domain"
	"batsim2mqtt/internal/server"
	"batsim2mqtt/internal/util/actorutil"

	pactor "github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {

	// load and print config
	cfg, err := initConfig()
	if err != nil {
		slog.Error("config errors", "error", err)
		os.Exit(1)
	}
	safePrintConfig(*cfg)

	// battery parameters, validated before any actor starts
	params := domain.NewParameters(cfg.BatteryConfig.CapacityWh, cfg.BatteryConfig.NominalVoltageV,
		cfg.BatteryConfig.ModelConstantWh, cfg.BatteryConfig.SolarPowerMaxW, cfg.BatteryConfig.LoadPowerW)
	defaults := domain.Defaults{
		SimVoltageV:    cfg.SimulationConfig.InitialVoltageV,
		TargetVoltageV: cfg.SimulationConfig.InitialTargetVoltageV,
		SolarPowerW:    cfg.SimulationConfig.InitialSolarPowerW,
		Eclipse:        cfg.SimulationConfig.InitialEclipse,
	}
	if err := params.Validate(defaults); err != nil {
		slog.Error("invalid simulation defaults", "error", err)
		os.Exit(1)
	}

	// zap logger
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)

	logger := zap.Must(zapCfg.Build())

	// init actor system
	as := actorutil.NewActorSystemWithZapLogger(logger)
	ctx := as.Root

	defer logger.Sync()

	props := pactor.PropsFromProducer(func() pactor.Actor {
		return actor.NewMasterOfPuppetsActor(*cfg, params, packProbeActorProvider(logger), mqttActorProvider(cfg, logger), logger)
	})
	pid, err := ctx.SpawnNamed(props, domain.ACTOR_ID_MASTER)
	if err != nil {
		return
	}

	server := server.NewServer(*cfg, ctx, pid)
	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(server, done)

	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Println("Graceful shutdown complete.")

	ctx.Stop(pid)
	as.Shutdown()
}

func initConfig() (*config.Config, error) {

	// alias PORT => BATSIM_PORT
	if port := os.Getenv("PORT"); port != "" {
		os.Setenv("BATSIM_PORT", port)
	}

	setConfigDefaults()

	viper.SetEnvPrefix("batsim")
	viper.AutomaticEnv()

	// if defined, try to load config from yaml file
	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		if _, err := os.Stat(cfgFile); err == nil {
			slog.Info("Using config", "file", cfgFile)
			viper.SetConfigFile(cfgFile)

			err = viper.ReadInConfig()
			if err != nil {
				slog.Error("Error reading config file", "error", err)
			}
		}
	}

	var cfg config.Config

	err := viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	// parse log level
	switch viper.GetString("log_level") {
	case "trace":
		cfg.LogLevel = zap.DebugLevel
	case "debug":
		cfg.LogLevel = zap.DebugLevel
	case "info":
		cfg.LogLevel = zap.InfoLevel
	case "error":
		cfg.LogLevel = zap.ErrorLevel
	case "warn":
		cfg.LogLevel = zap.WarnLevel
	case "fatal":
		cfg.LogLevel = zap.FatalLevel
	default:
		cfg.LogLevel = zap.InfoLevel
	}

	// check and fix base topic
	baseTopic, err := config.CheckMQTTTopic(cfg.MQTT.BaseTopic)
	if err != nil {
		return nil, errors.New("invalid base topic. can only contain letters, numbers and underscores")
	}
	cfg.MQTT.BaseTopic = baseTopic

	// check and fix homeassistant discovery topic
	hadBaseTopic, err := config.CheckMQTTTopic(cfg.MQTT.HADiscoveryTopic)
	if err != nil {
		return nil, errors.New("invalid homeassistant discovery topic. can only contain letters, numbers and underscores")
	}
	cfg.MQTT.HADiscoveryTopic = hadBaseTopic

	// check bounds
	if cfg.SimulationConfig.TickIntervalMillis < 10 {
		return nil, errors.New("config param simulation.tick_interval_millis should be >= 10ms")
	}
	if cfg.SimulationConfig.SimStepSeconds <= 0 {
		return nil, errors.New("config param simulation.sim_step_seconds should be > 0")
	}
	if cfg.SimulationConfig.EclipseHalfDurationSeconds <= 0 {
		return nil, errors.New("config param simulation.eclipse_half_duration_seconds should be > 0")
	}
	if cfg.SimulationConfig.RealPollTicks == 0 {
		return nil, errors.New("config param simulation.real_poll_ticks should be > 0")
	}
	if cfg.BatteryConfig.CapacityWh <= 0 || cfg.BatteryConfig.NominalVoltageV <= 0 || cfg.BatteryConfig.ModelConstantWh <= 0 {
		return nil, errors.New("config params battery.capacity_wh, battery.nominal_voltage_v and battery.model_constant_wh should be > 0")
	}

	return &cfg, nil
}

func packProbeActorProvider(logger *zap.Logger) actor.PackProbeActorProvider {
	return func() *adactor.PackProbeActor {
		return adactor.NewPackProbeActor(probe.NewBenchPackProbe(), logger)
	}
}

func mqttActorProvider(cfg *config.Config, logger *zap.Logger) actor.MQTTActorProvider {
	return func(es *eventstream.EventStream) *adactor.MQTTActor {
		return adactor.NewMQTTActor(cfg, es, logger)
	}
}

func setConfigDefaults() {
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("mqtt.ha_discovery_enable", false)
	viper.SetDefault("mqtt.base_topic", "batsim")
	viper.SetDefault("mqtt.ha_discovery_topic", "homeassistant")
	viper.SetDefault("battery.capacity_wh", 150)
	viper.SetDefault("battery.nominal_voltage_v", 34)
	viper.SetDefault("battery.model_constant_wh", 80)
	viper.SetDefault("battery.solar_power_max_w", 150)
	viper.SetDefault("battery.load_power_w", 100)
	viper.SetDefault("simulation.tick_interval_millis", 100)
	viper.SetDefault("simulation.sim_step_seconds", 1)
	viper.SetDefault("simulation.eclipse_half_duration_seconds", 3600)
	viper.SetDefault("simulation.real_poll_ticks", 10)
	viper.SetDefault("simulation.initial_voltage_v", 32.0)
	viper.SetDefault("simulation.initial_target_voltage_v", 34.0)
	viper.SetDefault("simulation.initial_solar_power_w", 110.0)
	viper.SetDefault("simulation.initial_eclipse", 0)
	viper.SetDefault("port", 8080)
}

func safePrintConfig(cfg config.Config) {
	cfg.MQTT.Username = "*redacted*"
	cfg.MQTT.Password = "*redacted*"
	slog.Info("Using", "config", cfg)
}
