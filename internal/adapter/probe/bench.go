// Package probe contains pack probe implementations. The real
// voltage/current channels are passthrough placeholders: the bench probe
// returns fixed values and a hardware probe can be dropped in behind the
// same port.
package probe

import (
	"batsim2mqtt/internal/core/domain"
	"batsim2mqtt/internal/core/port"
)

type BenchPackProbe struct {
	VoltageV float64
	CurrentA float64
}

// NewBenchPackProbe returns a probe reporting typical bench readings.
func NewBenchPackProbe() *BenchPackProbe {
	return &BenchPackProbe{
		VoltageV: 34.02,
		CurrentA: -0.24,
	}
}

func (p *BenchPackProbe) Open() error {
	return nil
}

func (p *BenchPackProbe) Read() (*domain.PackTelemetry, error) {
	return &domain.PackTelemetry{
		VoltageV: p.VoltageV,
		CurrentA: p.CurrentA,
	}, nil
}

func (p *BenchPackProbe) Close() error {
	return nil
}

// ensure interface compliance
var _ port.PackProbe = (*BenchPackProbe)(nil)
