package server

import (
	"net/http"
	"time"

	"batsim2mqtt/internal/core/domain"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type telemetrySnapshot struct {
	SimTimeSeconds float64 `json:"sim_time_seconds"`
	SimVoltageV    float64 `json:"sim_voltage_v"`
	SimCurrentA    float64 `json:"sim_current_a"`
	TargetVoltageV float64 `json:"target_voltage_v"`
	SolarPowerW    float64 `json:"solar_power_w"`
	Eclipse        string  `json:"eclipse"`
	RealVoltageV   float64 `json:"real_voltage_v"`
	RealCurrentA   float64 `json:"real_current_a"`
	MaxVoltageV    float64 `json:"max_voltage_v"`
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.GET("/healthcheck", s.HealthCheckHandler)
	e.GET("/telemetry", s.TelemetryHandler)

	return e
}

func (s *Server) HealthCheckHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
	}
	if response, ok := res.(domain.ActorHealthResponse); ok && response.Healthy {
		return c.String(http.StatusOK, "health_check: OK")
	}
	return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
}

func (s *Server) TelemetryHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.GetTelemetrySnapshotRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "telemetry: FAIL")
	}
	response, ok := res.(domain.GetTelemetrySnapshotResponse)
	if !ok {
		return c.String(http.StatusServiceUnavailable, "telemetry: FAIL")
	}
	return c.JSON(http.StatusOK, telemetrySnapshot{
		SimTimeSeconds: response.SimTimeSeconds,
		SimVoltageV:    response.SimVoltageV,
		SimCurrentA:    response.SimCurrentA,
		TargetVoltageV: response.TargetVoltageV,
		SolarPowerW:    response.SolarPowerW,
		Eclipse:        domain.EclipseStateString(response.Eclipse),
		RealVoltageV:   response.RealVoltageV,
		RealCurrentA:   response.RealCurrentA,
		MaxVoltageV:    response.MaxVoltageV,
	})
}
