package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/memory-isle/internal/config"
	"github.com/annel0/memory-isle/internal/entity"
	"github.com/annel0/memory-isle/internal/eventbus"
	"github.com/annel0/memory-isle/internal/logging"
	"github.com/annel0/memory-isle/internal/observability"
	"github.com/annel0/memory-isle/internal/sim"
	"github.com/annel0/memory-isle/internal/storage"
	"github.com/annel0/memory-isle/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "Путь к YAML конфигурации (или ISLE_CONFIG)")
		seed       = flag.Int64("seed", 0, "Сид мира (0 — из конфигурации)")
		duration   = flag.Duration("duration", 0, "Длительность прогона (0 — из конфигурации)")
		autopilot  = flag.Bool("autopilot", false, "Управлять игроком автоматически")
		fresh      = flag.Bool("new", false, "Не загружать сохранение")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}
	if *duration > 0 {
		cfg.Sim.DurationSeconds = int(duration.Seconds())
	}
	if *autopilot {
		cfg.Sim.Autopilot = true
	}

	if err := logging.InitDefaultLogger(cfg.Logging.Component); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	level := logging.ParseLevel(cfg.Logging.Level)
	logging.SetDefaultConsoleLevel(level)
	logging.GetLoggerManager().SetConsoleLevel(level)
	defer logging.GetLoggerManager().CloseAll()

	if err := run(cfg, *fresh); err != nil {
		logging.Error("❌ %v", err)
		logging.GetLoggerManager().CloseAll()
		logging.CloseDefaultLogger()
		os.Exit(1)
	}
}

func run(cfg *config.Config, fresh bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info("🏝️ Запуск острова памяти: сид %d, %d тиков/с", cfg.Sim.Seed, cfg.Sim.TickRate)

	// === ТЕЛЕМЕТРИЯ ===
	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("телеметрия: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logging.Warn("Остановка телеметрии: %v", err)
		}
	}()

	// === МЕТРИКИ ===
	metrics := sim.NewMetrics()
	metricsSrv := sim.ServeMetrics(cfg.Metrics.Addr(), metrics.Registry)
	defer metricsSrv.Shutdown(context.Background())

	// === ШИНА СОБЫТИЙ ===
	bus, err := openBus(cfg.EventBus)
	if err != nil {
		return err
	}
	defer bus.Close()

	if _, err := eventbus.StartLoggingListener(ctx, bus); err != nil {
		return fmt.Errorf("логгер событий: %w", err)
	}
	exporter := eventbus.NewMetricsExporter(bus, metrics.Registry)
	exporter.Start(time.Second)
	defer exporter.Stop()

	// === ХРАНИЛИЩЕ ===
	repo, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("хранилище: %w", err)
	}
	defer repo.Close()

	// === ПАРТИЯ ===
	observer := entity.MultiObserver{metrics, eventbus.NewBusObserver(ctx, bus, "sim")}
	game := world.NewGame(cfg.Sim.Seed, observer)

	if id := world.MapID(cfg.Sim.StartMap); id != "" && id != world.MapVillage {
		if err := game.ChangeMap(id); err != nil {
			logging.Warn("Стартовая карта %s: %v", id, err)
		}
	}

	if !fresh {
		restore(ctx, game, repo, cfg.Storage.Slot)
	}

	var input sim.InputSource = sim.IdleInput{}
	if cfg.Sim.Autopilot {
		input = sim.NewAutopilotInput()
		logging.Info("🤖 Автопилот включён")
	}
	runner := sim.NewRunner(game, input, metrics, cfg.Sim)
	runner.SetLogger(logging.GetComponentLogger("sim"))

	runCtx := ctx
	if d := cfg.Sim.Duration(); d > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	if err := runner.Run(runCtx); err != nil {
		return err
	}

	p := game.Player()
	logging.Info("📊 Итог: состояние %s, карта %s, уровень %d, осколков %d/%d, %.1f с игрового времени",
		game.State(), game.CurrentMap().ID, p.Level, p.MemoryFragments, entity.MaxMemoryFragments, game.Elapsed()/1000)

	return persist(game, repo, cfg.Storage.Slot)
}

func openBus(cfg config.EventBusConfig) (eventbus.EventBus, error) {
	if url := cfg.GetURL(); url != "" {
		bus, err := eventbus.NewJetStreamBus(url, cfg.Stream, cfg.RetentionDuration())
		if err != nil {
			return nil, fmt.Errorf("шина событий: %w", err)
		}
		return bus, nil
	}
	logging.Info("📨 Шина событий в памяти, буфер %d", cfg.Buffer)
	return eventbus.NewMemoryBus(cfg.Buffer), nil
}

func restore(ctx context.Context, game *world.Game, repo storage.SnapshotRepo, slot string) {
	snap, ok, err := storage.LoadPlayer(ctx, repo, slot)
	switch {
	case err != nil:
		logging.Warn("Сохранение %s не прочитано: %v", slot, err)
	case !ok:
		logging.Info("🆕 Новая игра")
	case !game.Restore(snap):
		logging.Warn("Сохранение %s не применено, новая игра", slot)
	default:
		logging.Info("📂 Загружено сохранение %s: карта %s, уровень %d", slot, snap.MapID, snap.Level)
	}
}

// persist сохраняет живого игрока; после конца партии слот очищается
func persist(game *world.Game, repo storage.SnapshotRepo, slot string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if game.State() == world.StateGameOver || game.State() == world.StateVictory {
		if err := repo.Delete(ctx, slot); err != nil {
			return fmt.Errorf("очистка сохранения: %w", err)
		}
		return nil
	}

	if err := storage.SavePlayer(ctx, repo, slot, game.Snapshot()); err != nil {
		return fmt.Errorf("сохранение: %w", err)
	}
	logging.Info("💾 Игра сохранена в слот %s", slot)
	return nil
}
