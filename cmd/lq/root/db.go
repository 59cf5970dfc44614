package root

import (
	"context"

	"lifequest/internal/config"
	"lifequest/internal/engine"
	"lifequest/internal/storage"
)

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg := config.Default()
	if cfgPath, err := config.DefaultPath(); err == nil {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return nil, nil, err
		}
	}

	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return engine.NewService(db, cfg), cleanup, nil
}
