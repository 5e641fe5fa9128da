package sim

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/memory-isle/internal/entity"
	"github.com/annel0/memory-isle/internal/logging"
	"github.com/annel0/memory-isle/internal/world"
)

// Metrics — Prometheus-метрики симуляции в собственном реестре.
// Также служит наблюдателем событий ядра.
type Metrics struct {
	Registry *prometheus.Registry

	ticks        prometheus.Counter
	tickDuration prometheus.Histogram
	entities     prometheus.Gauge
	enemies      prometheus.Gauge
	playerHealth prometheus.Gauge
	events       *prometheus.CounterVec
}

// NewMetrics создаёт реестр и регистрирует метрики симуляции
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "isle",
			Subsystem: "sim",
			Name:      "ticks_total",
			Help:      "Выполненные тики симуляции.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "isle",
			Subsystem: "sim",
			Name:      "tick_duration_seconds",
			Help:      "Реальное время обработки одного тика.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
		entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "isle",
			Subsystem: "sim",
			Name:      "entities",
			Help:      "Сущности на текущей карте.",
		}),
		enemies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "isle",
			Subsystem: "sim",
			Name:      "enemies",
			Help:      "Живые враги на текущей карте.",
		}),
		playerHealth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "isle",
			Subsystem: "sim",
			Name:      "player_health",
			Help:      "Здоровье игрока.",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isle",
			Subsystem: "sim",
			Name:      "events_total",
			Help:      "События ядра по типам.",
		}, []string{"type"}),
	}

	m.Registry.MustRegister(m.ticks, m.tickDuration, m.entities, m.enemies, m.playerHealth, m.events)
	return m
}

// ObserveTick учитывает тик и снимает состояние текущей карты
func (m *Metrics) ObserveTick(elapsed time.Duration, g *world.Game) {
	m.ticks.Inc()
	m.tickDuration.Observe(elapsed.Seconds())

	if cur := g.CurrentMap(); cur != nil {
		m.entities.Set(float64(len(cur.Entities())))
		m.enemies.Set(float64(len(cur.Enemies())))
	}
	m.playerHealth.Set(float64(g.Player().Health))
}

// OnEvent реализует entity.Observer
func (m *Metrics) OnEvent(ev entity.Event) {
	m.events.WithLabelValues(string(ev.Type)).Inc()
}

// ServeMetrics запускает HTTP-эндпоинт /metrics для реестра.
// Метод неблокирующий: сервер стартует в отдельной горутине.
func ServeMetrics(addr string, g prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	return srv
}
