package health

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/boardchart/internal/export"
	"github.com/felixgeelhaar/boardchart/internal/layout"
)

type stubChecker struct {
	name   string
	status Status
	delay  time.Duration
}

func (c stubChecker) Name() string { return c.name }

func (c stubChecker) Check(ctx context.Context) *Result {
	select {
	case <-time.After(c.delay):
		return NewResult(c.status, c.name)
	case <-ctx.Done():
		return Unhealthy("timed out")
	}
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"no checks", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make(map[string]*Result)
			for i, s := range tt.statuses {
				results[string(rune('a'+i))] = NewResult(s, "")
			}
			assert.Equal(t, tt.want, OverallStatus(results))
		})
	}
}

func TestManagerCheckTimeout(t *testing.T) {
	m := NewManager()
	m.timeout = 20 * time.Millisecond
	m.AddChecker(stubChecker{name: "fast", status: StatusHealthy, delay: time.Millisecond})
	m.AddChecker(stubChecker{name: "slow", status: StatusHealthy, delay: time.Second})

	results := m.Check(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, StatusHealthy, results["fast"].Status)
	assert.Equal(t, StatusUnhealthy, results["slow"].Status)
	assert.Greater(t, results["fast"].Latency, time.Duration(0))
}

func TestProbeManager(t *testing.T) {
	pm := NewProbeManager("1.0.0")
	ctx := context.Background()

	assert.Equal(t, StatusUnhealthy, pm.CheckStartup(ctx).Status)
	pm.MarkInitialized()
	assert.Equal(t, StatusHealthy, pm.CheckStartup(ctx).Status)

	pm.AddChecker(stubChecker{name: "degraded", status: StatusDegraded})
	ready := pm.CheckReadiness(ctx)
	assert.Equal(t, StatusDegraded, ready.Status)
	assert.Equal(t, "1.0.0", ready.Version)
	assert.Contains(t, ready.Checks, "degraded")

	pm.MarkShutdown()
	assert.Equal(t, StatusUnhealthy, pm.CheckReadiness(ctx).Status)
	assert.Equal(t, StatusDegraded, pm.CheckLiveness(ctx).Status)
}

func TestRenderChecker(t *testing.T) {
	c := NewRenderChecker()
	assert.Equal(t, "chart-render", c.Name())

	r := c.Check(context.Background())
	require.Equal(t, StatusHealthy, r.Status, r.Message)
	assert.Equal(t, 2, r.Details["rows"])
	assert.Greater(t, r.Details["bytes"], 0)
}

func TestRenderCheckerInvalidLayout(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.RowSpacingPx = -1
	r := NewRenderChecker(export.WithLayout(cfg)).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, r.Status)
}

func TestRenderCheckerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, StatusUnhealthy, NewRenderChecker().Check(ctx).Status)
}
