package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// 业务指标
	QuizAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_quiz_attempts_total",
			Help: "Quiz attempts recorded, by outcome",
		},
		[]string{"result"},
	)

	EnrolmentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_enrolments_created_total",
			Help: "Enrolments created",
		},
	)

	CertificatesIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_certificates_issued_total",
			Help: "Certificate records issued",
		},
	)

	CertificateArtifacts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_certificate_artifacts_total",
			Help: "Certificate artifact jobs processed, by status",
		},
		[]string{"status"},
	)

	SubmissionsGraded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_submissions_graded_total",
			Help: "Assignment submissions graded",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			QuizAttempts,
			EnrolmentsCreated,
			CertificatesIssued,
			CertificateArtifacts,
			SubmissionsGraded,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
