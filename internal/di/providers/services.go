package providers

import (
	"github.com/samber/do/v2"

	"github.com/watpato/profile-server/internal/config"
	"github.com/watpato/profile-server/internal/logger"
	"github.com/watpato/profile-server/internal/notify"
	"github.com/watpato/profile-server/internal/service"
)

// ProvideProfileService provides the user profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProfileService(storeHandle.Store, log.Logger), nil
}

// ProvideSocialService provides the follow graph service. When no
// notification service is configured, follow notifications are skipped.
func ProvideSocialService(i do.Injector) (*service.SocialService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	var notifier service.Notifier
	if cfg.Notification.BaseURL != "" {
		notifier = notify.NewClient(cfg.Notification.BaseURL, cfg.Notification.Timeout, log.Logger)
		log.Info("Follow notifications enabled", "base_url", cfg.Notification.BaseURL)
	} else {
		log.Info("Follow notifications disabled - no notification service configured")
	}

	return service.NewSocialService(storeHandle.Store, notifier, log.Logger), nil
}
