//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"tatico/internal"
	"tatico/internal/controllers"
	"tatico/internal/providers"
	"tatico/internal/services"
	"tatico/internal/streak"
	"tatico/internal/structures"
	"tatico/internal/timer"
	"tatico/internal/tracker"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewCacheProvider,
		providers.NewStoreProvider,
		providers.NewMetricsProvider,
		providers.NewVerseProvider,
		providers.NewWakeLockProvider,

		tracker.NewZstdCompressor,
		tracker.NewScheduler,
		services.NewTrackerService,
		provideTrackerStats,
		streak.NewEngine,
		timer.NewController,
		controllers.NewTrackerController,
		internal.NewApp,
	)

	return nil, nil
}
