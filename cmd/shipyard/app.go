package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/shipyard/internal/config"
	"github.com/cory-johannsen/shipyard/internal/game/device"
	"github.com/cory-johannsen/shipyard/internal/game/dice"
	"github.com/cory-johannsen/shipyard/internal/game/item"
	"github.com/cory-johannsen/shipyard/internal/game/ship"
	"github.com/cory-johannsen/shipyard/internal/observability"
	"github.com/cory-johannsen/shipyard/internal/scripting"
	"github.com/cory-johannsen/shipyard/internal/storage/postgres"
)

// app holds the configuration, logger, and content shared by every command.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	items   *item.Registry
	classes *device.Registry
	scripts *scripting.Manager
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger}
	if err := a.loadContent(); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) loadContent() error {
	start := time.Now()

	types, err := item.LoadTypes(a.cfg.Content.ItemsDir)
	if err != nil {
		return fmt.Errorf("loading item types: %w", err)
	}
	a.items = item.NewRegistry()
	for _, t := range types {
		if err := a.items.Register(t); err != nil {
			return err
		}
	}

	var hooks device.HookRunner
	if dir := a.cfg.Content.ScriptsDir; dir != "" {
		if _, err := os.Stat(dir); err == nil {
			a.scripts = scripting.NewManager(a.cfg.Scripting.InstructionLimit, a.logger)
			if err := a.scripts.LoadDir(dir); err != nil {
				return fmt.Errorf("loading scripts: %w", err)
			}
			hooks = a.scripts
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking scripts dir: %w", err)
		}
	}

	classes, err := device.LoadClasses(a.cfg.Content.DevicesDir, a.items, hooks)
	if err != nil {
		return fmt.Errorf("loading device classes: %w", err)
	}
	a.classes = device.NewRegistry()
	for _, c := range classes {
		if err := a.classes.Register(c); err != nil {
			return err
		}
	}

	a.logger.Debug("content loaded",
		zap.Int("item_types", len(types)),
		zap.Int("device_classes", len(classes)),
		zap.Bool("scripting", hooks != nil),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (a *app) close() {
	if a.scripts != nil {
		a.scripts.Close()
	}
	_ = a.logger.Sync()
}

func (a *app) shipOptions() ship.Options {
	return ship.Options{MaxSlots: a.cfg.Devices.MaxSlots, MinSlots: a.cfg.Devices.MinSlots}
}

func (a *app) randomSource() dice.Source {
	var src dice.Source
	switch a.cfg.Random.Source {
	case "seeded":
		src = dice.NewSeededSource(a.cfg.Random.Seed)
	default:
		src = dice.NewCryptoSource()
	}
	return dice.NewLoggedSource(src, a.logger)
}

func (a *app) loadout(id string) (*device.Loadout, error) {
	return device.LoadLoadout(a.cfg.Content.LoadoutsDir, id, a.items, a.classes)
}

func (a *app) readShip(path string) (*ship.Ship, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ship.Load(f, a.items, a.classes, a.shipOptions(), a.logger)
}

// writeShip saves s to path through a temporary file so a failed write never
// truncates an existing save.
func (a *app) writeShip(path string, s *ship.Ship) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".shipyard-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := s.Save(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (a *app) shipRepo(ctx context.Context) (*postgres.ShipRepository, func(), error) {
	pool, err := postgres.NewPool(ctx, a.cfg.Database, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	if _, dirty, err := pool.SchemaVersion(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("%w: run cmd/migrate first", err)
	} else if dirty {
		pool.Close()
		return nil, nil, errors.New("database schema is dirty: fix the failed migration with cmd/migrate")
	}
	repo := postgres.NewShipRepository(pool.DB(), a.items, a.classes, a.shipOptions(), a.logger)
	return repo, pool.Close, nil
}
