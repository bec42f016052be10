package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsPath = "/metrics"

var requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name: "http_request_duration_seconds",
	Buckets: []float64{
		0.001,
		0.005,
		0.01,
		0.05,
		0.1,
		0.5,
		1.0,
		5.0,
		10.0, // scrape-backed sync calls can take the full fetch timeout
		15.0,
	},
}, []string{"status", "method", "path"})

func init() {
	prometheus.MustRegister(requestDuration)
}

// Metrics records request latency histograms and serves /metrics.
func Metrics() echo.MiddlewareFunc {
	promHandler := echo.WrapHandler(promhttp.Handler())

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().RequestURI == metricsPath {
				return promHandler(c)
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			requestDuration.
				WithLabelValues(strconv.Itoa(c.Response().Status), c.Request().Method, c.Path()).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}
