package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the process-wide Prometheus HTTP middleware. It shares the
// default registry with the board collectors so /metrics exposes both.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.NewWithDefaultRegistry(serviceName)
		promInstance.SetSkipPaths([]string{"/metrics", "/health", "/health/live", "/health/ready"})
	})
	return promInstance
}

// MetricsMiddleware returns the request instrumentation handler of prom.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
