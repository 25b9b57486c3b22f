package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contadores del pipeline HTTP y de las decisiones de autenticación/autorización.
// Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	registry      *prometheus.Registry
	httpRequests  *prometheus.CounterVec
	authDecisions *prometheus.CounterVec
}

// NewMetrics crea un registro propio (no el global) con los colectores del proceso.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tienda_http_requests_total",
			Help: "Requests HTTP atendidos por método, ruta y status.",
		}, []string{"method", "route", "status"}),
		authDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tienda_auth_decisions_total",
			Help: "Decisiones de los middlewares de identidad y permisos.",
		}, []string{"stage", "outcome"}),
	}
	reg.MustRegister(
		m.httpRequests,
		m.authDecisions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry expone el registro para tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// AuthDecision cuenta una decisión. stage: identity | user | permission.
func (m *Metrics) AuthDecision(stage, outcome string) {
	if m == nil {
		return
	}
	m.authDecisions.WithLabelValues(stage, outcome).Inc()
}

// Middleware cuenta cada request con la ruta registrada (no la URL cruda).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if m == nil {
			return err
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.httpRequests.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).Inc()
		return err
	}
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
