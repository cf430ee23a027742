package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/watpato/profile-server/internal/domain"
)

func (s *Server) registerSocialRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "toggleFollow",
		Method:      http.MethodPost,
		Path:        "/profile/follow/{userId}/{targetUserId}",
		Summary:     "Toggle follow",
		Description: "Follows the target user if not currently followed, unfollows otherwise. The response reports which action was taken",
		Tags:        []string{"Social"},
	}, s.handleToggleFollow)
}

// === DTOs ===

// ToggleFollowInput carries the follower and target path parameters.
type ToggleFollowInput struct {
	UserID       string `path:"userId" doc:"Follower user ID"`
	TargetUserID string `path:"targetUserId" doc:"User ID to follow or unfollow"`
}

// FollowResponse reports the outcome of a follow toggle.
type FollowResponse struct {
	Action string `json:"action" enum:"followed,unfollowed" doc:"Action taken"`
}

// FollowOutput wraps the follow response for huma.
type FollowOutput struct {
	Body Envelope[FollowResponse]
}

// === Handlers ===

func (s *Server) handleToggleFollow(ctx context.Context, input *ToggleFollowInput) (*FollowOutput, error) {
	followerID, err := parseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	followedID, err := parseUserID(input.TargetUserID)
	if err != nil {
		return nil, err
	}

	action, err := s.services.Social.ToggleFollow(ctx, followerID, followedID)
	if err != nil {
		return nil, err
	}

	message := "User followed"
	if action == domain.FollowActionUnfollowed {
		message = "User unfollowed"
	}

	return &FollowOutput{Body: envelopeMsg(message, FollowResponse{
		Action: string(action),
	})}, nil
}
