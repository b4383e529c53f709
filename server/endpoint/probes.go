package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/socialfeed/component"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// ProbeResponse is the body of every probe endpoint. Components is only
// filled by Health.
type ProbeResponse struct {
	Status     string             `json:"status"`
	Service    string             `json:"service"`
	Timestamp  string             `json:"timestamp"`
	Components []component.Health `json:"components,omitempty"`
}

func probe(c *gin.Context, code int, service, status string, components []component.Health) {
	c.JSON(code, ProbeResponse{
		Status:     status,
		Service:    service,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: components,
	})
}

func overall(c *gin.Context, checker HealthChecker) (component.HealthStatus, []component.Health) {
	if checker == nil {
		return component.StatusHealthy, nil
	}
	components := checker(c.Request.Context())
	return component.Overall(components), components
}

// Health reports the overall status with per-component detail. An unhealthy
// component (typically the database) turns it into a 503.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, components := overall(c, checker)
		code := http.StatusOK
		if status == component.StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		probe(c, code, serviceName, string(status), components)
	}
}

// Liveness only confirms the process can serve HTTP.
func Liveness(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		probe(c, http.StatusOK, serviceName, "alive", nil)
	}
}

// Readiness treats a degraded service as ready and an unhealthy one as not.
func Readiness(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if status, _ := overall(c, checker); status == component.StatusUnhealthy {
			probe(c, http.StatusServiceUnavailable, serviceName, "not_ready", nil)
			return
		}
		probe(c, http.StatusOK, serviceName, "ready", nil)
	}
}
