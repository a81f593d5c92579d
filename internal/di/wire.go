//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Zecser/Catering-and-Tourism/internal/app"
)

// InitializeApp wires the full application graph from environment config.
func InitializeApp() (*app.App, error) {
	wire.Build(
		ConfigSet,
		ObservabilitySet,
		RuntimeInfraSet,
		RepositorySet,
		SecuritySet,
		ServiceSet,
		HTTPSet,
		AppSet,
	)
	return nil, nil
}

// InitializeMigrationRunner builds only what the migrate subcommand needs.
func InitializeMigrationRunner() (*MigrationRunner, error) {
	wire.Build(
		ConfigSet,
		provideOpenDB,
		NewMigrationRunner,
	)
	return nil, nil
}
