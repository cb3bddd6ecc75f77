//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/veya-app/cosmic-engine/internal/bootstrap"
	"github.com/veya-app/cosmic-engine/internal/domain/cosmic"
	"github.com/veya-app/cosmic-engine/internal/infra/config"
	"github.com/veya-app/cosmic-engine/internal/infra/ephem/analytic"
	httpiface "github.com/veya-app/cosmic-engine/internal/interface/http"
	"github.com/veya-app/cosmic-engine/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideEngineConfig,
		provideEphemerisProvider,
		provideMemoStore,
		cosmic.NewService,
		wire.Bind(new(cosmic.EphemerisProvider), new(*analytic.Provider)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
