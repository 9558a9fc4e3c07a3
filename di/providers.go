package di

import (
	"context"

	"tzbot/internal/domains/zone/registry"
	"tzbot/internal/domains/zone/repository"
)

// ProvideRegistry seeds the registry from the persisted snapshot.
func ProvideRegistry(ctx context.Context, repo repository.Zone) *registry.Registry {
	return registry.New(repo.Load(ctx))
}
