package sim

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/memory-isle/internal/config"
	"github.com/annel0/memory-isle/internal/logging"
	"github.com/annel0/memory-isle/internal/world"
)

const tracerName = "github.com/annel0/memory-isle/internal/sim"

// Runner продвигает партию с фиксированной частотой
type Runner struct {
	game     *world.Game
	input    InputSource
	metrics  *Metrics
	tracer   trace.Tracer
	interval time.Duration
	maxDelta float64
	ticks    uint64
	log      *logging.Logger // nil — без логов
}

// NewRunner создаёт планировщик; metrics может быть nil
func NewRunner(game *world.Game, input InputSource, metrics *Metrics, cfg config.SimConfig) *Runner {
	if input == nil {
		input = IdleInput{}
	}
	maxDelta := cfg.MaxDeltaMs
	if maxDelta <= 0 || maxDelta > world.MaxDelta {
		maxDelta = world.MaxDelta
	}
	return &Runner{
		game:     game,
		input:    input,
		metrics:  metrics,
		tracer:   otel.Tracer(tracerName),
		interval: cfg.TickInterval(),
		maxDelta: maxDelta,
	}
}

// SetTracer подменяет трейсер (по умолчанию глобальный провайдер otel)
func (r *Runner) SetTracer(t trace.Tracer) {
	r.tracer = t
}

// SetLogger задаёт логгер компонента
func (r *Runner) SetLogger(l *logging.Logger) {
	r.log = l
}

// Ticks возвращает число выполненных тиков
func (r *Runner) Ticks() uint64 { return r.ticks }

// Game возвращает партию
func (r *Runner) Game() *world.Game { return r.game }

// Step выполняет один тик с шагом dt миллисекунд
func (r *Runner) Step(ctx context.Context, dt float64) {
	_, span := r.tracer.Start(ctx, "sim.tick")
	defer span.End()

	dt = math.Min(world.ClampDelta(dt), r.maxDelta)
	in := r.input.Next(r.game)

	start := time.Now()
	r.game.Update(dt, in)
	elapsed := time.Since(start)
	r.ticks++

	attrs := []attribute.KeyValue{
		attribute.Int64("sim.tick", int64(r.ticks)),
		attribute.Float64("sim.dt_ms", dt),
		attribute.String("sim.state", r.game.State().String()),
	}
	if cur := r.game.CurrentMap(); cur != nil {
		attrs = append(attrs, attribute.String("sim.map", string(cur.ID)))
	}
	span.SetAttributes(attrs...)

	if r.metrics != nil {
		r.metrics.ObserveTick(elapsed, r.game)
	}
}

// Run крутит цикл до отмены ctx или конца партии.
// Шаг берётся по реальным часам, поэтому задержки планировщика не копятся.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info("▶️ Симуляция запущена: период %v", r.interval)
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("⏹️ Симуляция остановлена после %d тиков", r.ticks)
			return nil
		case now := <-ticker.C:
			dt := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now
			r.Step(ctx, dt)

			switch st := r.game.State(); st {
			case world.StateGameOver, world.StateVictory:
				r.log.Info("🏁 Партия завершена: %s, тиков %d", st, r.ticks)
				return nil
			}
		}
	}
}
