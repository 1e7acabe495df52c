//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
)

// InitializeContainer builds the complete application container.
// Run `wire ./internal/di` after changing the provider sets.
func InitializeContainer() (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil
}
