package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogicum_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// ContentMutations counts successful writes by resource and action.
	ContentMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogicum_content_mutations_total",
		Help: "Total number of content writes by resource and action",
	}, []string{"resource", "action"})

	// NotFoundResponses counts not-found outcomes, which include records the
	// requester may not see or modify.
	NotFoundResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogicum_not_found_responses_total",
		Help: "Total number of not-found responses by route",
	}, []string{"route"})
)

var (
	promOnce sync.Once
	promMW   *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the HTTP metrics middleware for serviceName. The
// collectors live in the default registry, so only the first call registers
// them and later calls share the same instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMW = fiberprometheus.New(serviceName)
	})
	return promMW
}

// MetricsMiddleware records request metrics and counts 404 outcomes per route.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	promHandler := prom.Middleware
	return func(c *fiber.Ctx) error {
		err := promHandler(c)
		if c.Response().StatusCode() == fiber.StatusNotFound {
			route := "unmatched"
			if r := c.Route(); r != nil && r.Path != "" {
				route = r.Path
			}
			NotFoundResponses.WithLabelValues(route).Inc()
		}
		return err
	}
}
