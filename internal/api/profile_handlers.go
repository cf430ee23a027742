package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/watpato/profile-server/internal/domain"
	domainerrors "github.com/watpato/profile-server/internal/errors"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getOwnProfile",
		Method:      http.MethodGet,
		Path:        "/profile/me/{userId}",
		Summary:     "Get own profile",
		Description: "Returns the full private profile: account fields, favorite genres, liked books, all authored books including drafts, and private stats",
		Tags:        []string{"Profile"},
	}, s.handleGetOwnProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPublicProfile",
		Method:      http.MethodGet,
		Path:        "/profile/user/{userId}",
		Summary:     "Get public profile",
		Description: "Returns the profile as seen by other users: no email, published books only, public stats",
		Tags:        []string{"Profile"},
	}, s.handleGetPublicProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfilePicture",
		Method:      http.MethodPatch,
		Path:        "/profile/profile-picture/{userId}",
		Summary:     "Update profile picture",
		Tags:        []string{"Profile"},
	}, s.handleUpdateProfilePicture)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBanner",
		Method:      http.MethodPatch,
		Path:        "/profile/banner/{userId}",
		Summary:     "Update banner",
		Tags:        []string{"Profile"},
	}, s.handleUpdateBanner)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfileInfo",
		Method:      http.MethodPatch,
		Path:        "/profile/info/{userId}",
		Summary:     "Update profile info",
		Description: "Partially updates username, biography, and the favorite genre set. Absent fields are left untouched; an empty biography or genre list clears the value",
		Tags:        []string{"Profile"},
	}, s.handleUpdateProfileInfo)
}

// === DTOs ===

// GenreResponse represents a genre in API responses.
type GenreResponse struct {
	ID   string `json:"id" doc:"Genre ID"`
	Name string `json:"name" doc:"Genre name"`
}

// BookResponse represents an authored book in API responses.
type BookResponse struct {
	ID          string    `json:"id" doc:"Book ID"`
	Title       string    `json:"title" doc:"Book title"`
	Description *string   `json:"description,omitempty" doc:"Book description"`
	CoverImage  *string   `json:"coverImage,omitempty" doc:"Cover image URL"`
	Published   bool      `json:"published" doc:"Whether the book is published"`
	CreatedAt   time.Time `json:"createdAt" doc:"Creation time"`
}

// LikedBookResponse represents a liked book with its author's name.
type LikedBookResponse struct {
	ID          string  `json:"id" doc:"Book ID"`
	Title       string  `json:"title" doc:"Book title"`
	Description *string `json:"description,omitempty" doc:"Book description"`
	CoverImage  *string `json:"coverImage,omitempty" doc:"Cover image URL"`
	Author      string  `json:"author" doc:"Author username"`
}

// OwnStatsResponse contains the private profile counters.
type OwnStatsResponse struct {
	FriendsCount   int `json:"friendsCount" doc:"Number of friends"`
	FollowersCount int `json:"followersCount" doc:"Number of followers"`
	BooksWritten   int `json:"booksWritten" doc:"Books authored, drafts included"`
	BooksLiked     int `json:"booksLiked" doc:"Books liked"`
}

// PublicStatsResponse contains the publicly visible counters.
type PublicStatsResponse struct {
	FollowersCount int `json:"followersCount" doc:"Number of followers"`
	BooksPublished int `json:"booksPublished" doc:"Published books"`
}

// OwnProfileResponse is the private profile view, email included.
type OwnProfileResponse struct {
	ID             string              `json:"id" doc:"User ID"`
	Username       string              `json:"username" doc:"Username"`
	Email          string              `json:"email" doc:"Email address"`
	FriendCode     *string             `json:"friendCode,omitempty" doc:"Friend code"`
	ProfilePicture *string             `json:"profilePicture,omitempty" doc:"Profile picture URL"`
	Banner         *string             `json:"banner,omitempty" doc:"Banner URL"`
	Biography      *string             `json:"biography,omitempty" doc:"Biography"`
	CreatedAt      time.Time           `json:"createdAt" doc:"Account creation time"`
	FavoriteGenres []GenreResponse     `json:"favoriteGenres" doc:"Favorite genres"`
	LikedBooks     []LikedBookResponse `json:"likedBooks" doc:"Liked books"`
	Books          []BookResponse      `json:"books" doc:"Authored books, drafts included"`
	Stats          OwnStatsResponse    `json:"stats" doc:"Private counters"`
}

// PublicProfileResponse is the profile view other users see. No email.
type PublicProfileResponse struct {
	ID             string              `json:"id" doc:"User ID"`
	Username       string              `json:"username" doc:"Username"`
	ProfilePicture *string             `json:"profilePicture,omitempty" doc:"Profile picture URL"`
	Banner         *string             `json:"banner,omitempty" doc:"Banner URL"`
	Biography      *string             `json:"biography,omitempty" doc:"Biography"`
	CreatedAt      time.Time           `json:"createdAt" doc:"Account creation time"`
	FavoriteGenres []GenreResponse     `json:"favoriteGenres" doc:"Favorite genres"`
	PublishedBooks []BookResponse      `json:"publishedBooks" doc:"Published books only"`
	Stats          PublicStatsResponse `json:"stats" doc:"Public counters"`
}

// ProfileImageResponse echoes the user after a picture or banner update.
type ProfileImageResponse struct {
	ID             string  `json:"id" doc:"User ID"`
	Username       string  `json:"username" doc:"Username"`
	ProfilePicture *string `json:"profilePicture,omitempty" doc:"Profile picture URL"`
	Banner         *string `json:"banner,omitempty" doc:"Banner URL"`
}

// ProfileInfoResponse echoes the fields touched by an info update.
type ProfileInfoResponse struct {
	ID             string          `json:"id" doc:"User ID"`
	Username       string          `json:"username" doc:"Username"`
	Biography      *string         `json:"biography,omitempty" doc:"Biography"`
	FavoriteGenres []GenreResponse `json:"favoriteGenres" doc:"Favorite genres after the update"`
}

// === Inputs/Outputs ===

// UserIDInput carries the user id path parameter.
type UserIDInput struct {
	UserID string `path:"userId" doc:"User ID" example:"42"`
}

// OwnProfileOutput wraps the private profile for huma.
type OwnProfileOutput struct {
	Body Envelope[OwnProfileResponse]
}

// PublicProfileOutput wraps the public profile for huma.
type PublicProfileOutput struct {
	Body Envelope[PublicProfileResponse]
}

// UpdateProfilePictureInput carries a profile picture update.
type UpdateProfilePictureInput struct {
	UserID string `path:"userId" doc:"User ID"`
	Body   struct {
		ProfilePicture string `json:"profilePicture" validate:"required" doc:"New profile picture URL"`
	}
}

// UpdateBannerInput carries a banner update.
type UpdateBannerInput struct {
	UserID string `path:"userId" doc:"User ID"`
	Body   struct {
		Banner string `json:"banner" validate:"required" doc:"New banner URL"`
	}
}

// ProfileImageOutput wraps the picture/banner update response for huma.
type ProfileImageOutput struct {
	Body Envelope[ProfileImageResponse]
}

// UpdateProfileInfoInput carries a partial profile info update.
// Every body field is optional; absent means untouched.
type UpdateProfileInfoInput struct {
	UserID string `path:"userId" doc:"User ID"`
	Body   struct {
		Username       *string `json:"username,omitempty" validate:"omitnil,min=3,max=50,username" doc:"New username"`
		Biography      *string `json:"biography,omitempty" validate:"omitnil,max=500" doc:"New biography, empty string clears it"`
		FavoriteGenres []int64 `json:"favoriteGenres,omitempty" validate:"omitnil,dive,gt=0" doc:"Replacement favorite genre IDs, empty list clears them"`
	}
}

// ProfileInfoOutput wraps the info update response for huma.
type ProfileInfoOutput struct {
	Body Envelope[ProfileInfoResponse]
}

// === Handlers ===

func (s *Server) handleGetOwnProfile(ctx context.Context, input *UserIDInput) (*OwnProfileOutput, error) {
	userID, err := parseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Profile.GetOwnProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &OwnProfileOutput{Body: envelope(OwnProfileResponse{
		ID:             formatID(profile.User.ID),
		Username:       profile.User.Username,
		Email:          profile.User.Email,
		FriendCode:     profile.User.FriendCode,
		ProfilePicture: profile.User.ProfilePicture,
		Banner:         profile.User.Banner,
		Biography:      profile.User.Biography,
		CreatedAt:      profile.User.CreatedAt,
		FavoriteGenres: genreResponses(profile.FavoriteGenres),
		LikedBooks:     likedBookResponses(profile.LikedBooks),
		Books:          bookResponses(profile.OwnBooks),
		Stats: OwnStatsResponse{
			FriendsCount:   profile.Stats.FriendsCount,
			FollowersCount: profile.Stats.FollowersCount,
			BooksWritten:   profile.Stats.BooksWritten,
			BooksLiked:     profile.Stats.BooksLiked,
		},
	})}, nil
}

func (s *Server) handleGetPublicProfile(ctx context.Context, input *UserIDInput) (*PublicProfileOutput, error) {
	userID, err := parseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Profile.GetPublicProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &PublicProfileOutput{Body: envelope(PublicProfileResponse{
		ID:             formatID(profile.User.ID),
		Username:       profile.User.Username,
		ProfilePicture: profile.User.ProfilePicture,
		Banner:         profile.User.Banner,
		Biography:      profile.User.Biography,
		CreatedAt:      profile.User.CreatedAt,
		FavoriteGenres: genreResponses(profile.FavoriteGenres),
		PublishedBooks: bookResponses(profile.PublishedBooks),
		Stats: PublicStatsResponse{
			FollowersCount: profile.Stats.FollowersCount,
			BooksPublished: profile.Stats.BooksPublished,
		},
	})}, nil
}

func (s *Server) handleUpdateProfilePicture(ctx context.Context, input *UpdateProfilePictureInput) (*ProfileImageOutput, error) {
	userID, err := parseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	user, err := s.services.Profile.UpdateProfilePicture(ctx, userID, input.Body.ProfilePicture)
	if err != nil {
		return nil, err
	}

	return &ProfileImageOutput{Body: envelopeMsg("Profile picture updated", ProfileImageResponse{
		ID:             formatID(user.ID),
		Username:       user.Username,
		ProfilePicture: user.ProfilePicture,
	})}, nil
}

func (s *Server) handleUpdateBanner(ctx context.Context, input *UpdateBannerInput) (*ProfileImageOutput, error) {
	userID, err := parseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	user, err := s.services.Profile.UpdateBanner(ctx, userID, input.Body.Banner)
	if err != nil {
		return nil, err
	}

	return &ProfileImageOutput{Body: envelopeMsg("Banner updated", ProfileImageResponse{
		ID:       formatID(user.ID),
		Username: user.Username,
		Banner:   user.Banner,
	})}, nil
}

func (s *Server) handleUpdateProfileInfo(ctx context.Context, input *UpdateProfileInfoInput) (*ProfileInfoOutput, error) {
	userID, err := parseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	info, err := s.services.Profile.UpdateProfileInfo(ctx, userID, domain.ProfilePatch{
		Username:       input.Body.Username,
		Biography:      input.Body.Biography,
		FavoriteGenres: input.Body.FavoriteGenres,
	})
	if err != nil {
		return nil, err
	}

	return &ProfileInfoOutput{Body: envelopeMsg("Profile info updated", ProfileInfoResponse{
		ID:             formatID(info.ID),
		Username:       info.Username,
		Biography:      info.Biography,
		FavoriteGenres: genreResponses(info.FavoriteGenres),
	})}, nil
}

// === Helpers ===

// parseUserID parses a path id. Malformed ids fail before any storage access.
func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.BadRequest("Invalid user id")
	}
	return id, nil
}

// formatID renders numeric ids as decimal strings, matching the wire contract.
func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func genreResponses(genres []domain.Genre) []GenreResponse {
	out := make([]GenreResponse, len(genres))
	for i, g := range genres {
		out[i] = GenreResponse{ID: formatID(g.ID), Name: g.Name}
	}
	return out
}

func bookResponses(books []domain.Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i, b := range books {
		out[i] = BookResponse{
			ID:          formatID(b.ID),
			Title:       b.Title,
			Description: b.Description,
			CoverImage:  b.CoverImage,
			Published:   b.Published,
			CreatedAt:   b.CreatedAt,
		}
	}
	return out
}

func likedBookResponses(books []domain.LikedBook) []LikedBookResponse {
	out := make([]LikedBookResponse, len(books))
	for i, b := range books {
		out[i] = LikedBookResponse{
			ID:          formatID(b.ID),
			Title:       b.Title,
			Description: b.Description,
			CoverImage:  b.CoverImage,
			Author:      b.AuthorName,
		}
	}
	return out
}
