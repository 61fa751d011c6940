package health

import (
	"context"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// CheckResult represents the health of a single dependency.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResult is the top-level health response.
type HealthResult struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	statusUp        = "up"
	statusDown      = "down"
)

// Checker verifies that all configured dependencies are reachable.
type Checker struct {
	deps   map[string]Pinger
	logger *zap.Logger
	gauge  *prometheus.GaugeVec
}

// NewChecker creates a health checker and registers its Prometheus gauge.
func NewChecker(deps map[string]Pinger, logger *zap.Logger, reg prometheus.Registerer) *Checker {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "shop",
		Name:      "health_check_up",
		Help:      "Whether a dependency is reachable. 1 = up, 0 = down.",
	}, []string{"dependency"})
	reg.MustRegister(gauge)

	if deps == nil {
		deps = map[string]Pinger{}
	}

	return &Checker{
		deps:   deps,
		logger: logger.Named("health"),
		gauge:  gauge,
	}
}

// Liveness reports that the process is serving requests.
func (c *Checker) Liveness(_ context.Context) HealthResult {
	return HealthResult{Status: StatusHealthy, Message: "Ecommerce API is running"}
}

// Readiness pings every dependency and reports per-check status. With no
// external dependencies configured the service is always ready.
func (c *Checker) Readiness(ctx context.Context) HealthResult {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	result := HealthResult{
		Status: StatusHealthy,
		Checks: make(map[string]CheckResult, len(c.deps)),
	}

	names := make([]string, 0, len(c.deps))
	for name := range c.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := c.deps[name].Ping(checkCtx); err != nil {
			c.logger.Warn("Dependency health check failed", zap.String("dependency", name), zap.Error(err))
			result.Status = StatusUnhealthy
			result.Checks[name] = CheckResult{Status: statusDown, Error: err.Error()}
			c.gauge.WithLabelValues(name).Set(0)
			continue
		}
		result.Checks[name] = CheckResult{Status: statusUp}
		c.gauge.WithLabelValues(name).Set(1)
	}

	return result
}
