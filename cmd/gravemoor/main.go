package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gravemoor/sim/internal/config"
	"github.com/gravemoor/sim/internal/core/ecs"
	"github.com/gravemoor/sim/internal/core/event"
	coresys "github.com/gravemoor/sim/internal/core/system"
	"github.com/gravemoor/sim/internal/data"
	"github.com/gravemoor/sim/internal/persist"
	"github.com/gravemoor/sim/internal/scripting"
	"github.com/gravemoor/sim/internal/system"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "gravemoor.toml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting", zap.String("server", cfg.Server.Name))

	// 3. Optional PostgreSQL connection and migrations
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var snapshotRepo *persist.SnapshotRepo
	if cfg.Database.Enabled {
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		snapshotRepo = persist.NewSnapshotRepo(db)
		log.Info("database connected")
	} else {
		log.Info("running without persistence")
	}

	// 4. Load simulation data
	agentTable, err := data.LoadAgentTable(filepath.Join(cfg.Paths.DataDir, "agents.yaml"))
	if err != nil {
		return fmt.Errorf("load agent table: %w", err)
	}
	log.Info("agent templates loaded", zap.Int("count", agentTable.Count()))

	spawnList, err := data.LoadSpawnList(filepath.Join(cfg.Paths.DataDir, "spawns.yaml"))
	if err != nil {
		return fmt.Errorf("load spawn list: %w", err)
	}
	log.Info("spawn entries loaded", zap.Int("count", len(spawnList)))

	grid, err := data.LoadGridMap(filepath.Join(cfg.Paths.DataDir, "map.yaml"))
	if err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	log.Info("map loaded",
		zap.String("name", grid.Name),
		zap.Int("width", grid.Width()),
		zap.Int("height", grid.Height()),
	)

	// 5. Initialize Lua scripting engine
	luaEngine, err := scripting.NewEngine(cfg.Paths.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()

	// 6. Create the world and register systems
	world := ecs.NewWorld()
	stores := system.NewStores(world)
	bus := event.NewBus()

	event.Subscribe(bus, func(ev event.EntityDied) {
		fields := []zap.Field{
			zap.Uint32("entity", ev.ID.Index()),
			zap.Int("x", ev.X), zap.Int("y", ev.Y),
		}
		if !ev.Killer.IsZero() {
			fields = append(fields, zap.Uint32("killer", ev.Killer.Index()))
		}
		log.Debug("entity died", fields...)
	})

	deps := &system.Deps{
		World:         world,
		Stores:        stores,
		Bus:           bus,
		Agents:        agentTable,
		Spawns:        spawnList,
		Grid:          grid,
		Lua:           luaEngine,
		Log:           log,
		SnapshotRepo:  snapshotRepo,
		SnapshotEvery: cfg.Simulation.SnapshotEvery,
		SnapshotKeep:  cfg.Simulation.SnapshotKeep,
	}
	if err := system.RegisterAll(deps); err != nil {
		return fmt.Errorf("register systems: %w", err)
	}
	log.Info("systems resolved", zap.Int("count", world.Runner().Len()))

	// 7. Run the tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	log.Info("simulation running", zap.Duration("tick", cfg.Simulation.TickRate))

	start := time.Now()
	tick := 0
	for {
		select {
		case <-ticker.C:
			tick++
			world.Update(cfg.Simulation.TickRate)
			if cfg.Simulation.DrawEvery > 0 && tick%cfg.Simulation.DrawEvery == 0 {
				world.Draw(time.Since(start))
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			if snap, ok := coresys.Get[system.SnapshotSystem](world.Runner()); ok {
				snap.Save()
			}
			log.Info("stopped", zap.Int("ticks", tick))
			return nil
		}
	}
}

// loadConfig falls back to the built-in defaults when the config file does
// not exist, so a bare `gravemoor` run works out of the box.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
