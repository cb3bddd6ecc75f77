package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/veya-app/cosmic-engine/internal/domain/cosmic"
	"github.com/veya-app/cosmic-engine/internal/infra/config"
	"github.com/veya-app/cosmic-engine/internal/infra/cosmicstore"
	"github.com/veya-app/cosmic-engine/internal/infra/ephem/analytic"
)

func provideEngineConfig(cfg *config.Config) cosmic.Config {
	return cosmic.Config{
		Policy: cosmic.ImpactPolicy{
			Ingress:           cosmic.Impact(cfg.Engine.Impacts.Ingress),
			StationRetrograde: cosmic.Impact(cfg.Engine.Impacts.StationRetrograde),
			StationDirect:     cosmic.Impact(cfg.Engine.Impacts.StationDirect),
			FullMoon:          cosmic.Impact(cfg.Engine.Impacts.FullMoon),
			NewMoon:           cosmic.Impact(cfg.Engine.Impacts.NewMoon),
		},
	}
}

func provideEphemerisProvider() *analytic.Provider {
	return analytic.NewProvider()
}

func provideMemoStore(cfg *config.Config, logger *slog.Logger) cosmic.Store {
	if !cfg.Cache.Enabled {
		logger.Info("memoization cache disabled")
		return nil
	}
	if cfg.Cache.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return cosmicstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return cosmicstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("valkey memo store enabled", "addr", cfg.Cache.Valkey.Addr)
			return cosmicstore.NewValkeyStore(client, cfg.Cache.Prefix)
		}
	}
	return cosmicstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
