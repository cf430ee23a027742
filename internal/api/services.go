package api

import (
	"github.com/watpato/profile-server/internal/service"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Profile *service.ProfileService
	Social  *service.SocialService
}
