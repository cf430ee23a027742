// Package di provides dependency injection configuration for the profile server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/watpato/profile-server/internal/config"
	"github.com/watpato/profile-server/internal/di/providers"
	"github.com/watpato/profile-server/internal/logger"
	"github.com/watpato/profile-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideSocialService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	_ = do.MustInvoke[*service.ProfileService](injector)
	_ = do.MustInvoke[*service.SocialService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
