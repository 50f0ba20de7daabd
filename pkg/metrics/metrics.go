// Package metrics Prometheus指标
//
// 指标在包初始化时注册到默认Registry，通过/metrics暴露。
// 命名约定：Counter以_total结尾，Histogram以单位结尾。
// 标签只使用有限取值（method、路由模板、结果），不要用用户ID。
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "educonnect"

var (
	// HTTPRequestsTotal 标签path使用路由模板（/api/v1/books/:id），避免高基数
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求耗时（秒）",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "正在处理的HTTP请求数",
		},
	)

	// LoginAttemptsTotal result: success | failure | rate_limited
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "登录尝试次数",
		},
		[]string{"result"},
	)

	UsersRegisteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "注册用户数",
		},
		[]string{"role"},
	)

	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "创建订单数",
		},
	)

	// BookCacheRequestsTotal result: hit | miss
	BookCacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "book_cache_requests_total",
			Help:      "图书详情缓存查询次数",
		},
		[]string{"result"},
	)

	// CircuitBreakerState 0=CLOSED 1=OPEN 2=HALF_OPEN
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	// SagaExecutionsTotal result: success | compensated
	SagaExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saga_executions_total",
			Help:      "Saga执行次数",
		},
		[]string{"saga", "result"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "领域事件发布次数",
		},
		[]string{"type", "result"},
	)

	EventsConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_consumed_total",
			Help:      "领域事件消费次数",
		},
		[]string{"type", "result"},
	)

	EventProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_processing_duration_seconds",
			Help:      "领域事件处理耗时（秒）",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	)
)

// ObserveHTTP 记录一次HTTP请求
func ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func ObserveLogin(result string) {
	LoginAttemptsTotal.WithLabelValues(result).Inc()
}

func ObserveRegistration(role string) {
	UsersRegisteredTotal.WithLabelValues(role).Inc()
}

func ObserveBookCache(hit bool) {
	if hit {
		BookCacheRequestsTotal.WithLabelValues("hit").Inc()
		return
	}
	BookCacheRequestsTotal.WithLabelValues("miss").Inc()
}

// SetBreakerState state取值同circuitbreaker.State
func SetBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

func ObserveSaga(name string, compensated bool) {
	result := "success"
	if compensated {
		result = "compensated"
	}
	SagaExecutionsTotal.WithLabelValues(name, result).Inc()
}

func ObservePublish(eventType string, err error) {
	EventsPublishedTotal.WithLabelValues(eventType, resultOf(err)).Inc()
}

func ObserveConsume(eventType string, elapsed time.Duration, err error) {
	EventsConsumedTotal.WithLabelValues(eventType, resultOf(err)).Inc()
	EventProcessingDuration.Observe(elapsed.Seconds())
}

func resultOf(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
