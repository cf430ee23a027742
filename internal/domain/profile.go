package domain

// OwnStats are the counters shown to a user on their own profile.
type OwnStats struct {
	FriendsCount   int
	FollowersCount int
	BooksWritten   int
	BooksLiked     int
}

// PublicStats are the counters exposed on another user's profile.
type PublicStats struct {
	FollowersCount int
	BooksPublished int
}

// OwnProfile is the full profile a user sees for themselves, including
// unpublished books and liked books.
type OwnProfile struct {
	User           User
	FavoriteGenres []Genre
	LikedBooks     []LikedBook
	OwnBooks       []Book
	Stats          OwnStats
}

// PublicProfile is the profile visible to other users. Only published
// books are included.
type PublicProfile struct {
	User            User
	FavoriteGenres  []Genre
	PublishedBooks  []Book
	Stats           PublicStats
}

// ProfilePatch carries a partial profile-info update. Nil fields are
// left untouched; a nil FavoriteGenres slice keeps the existing set.
type ProfilePatch struct {
	Username       *string
	Biography      *string
	FavoriteGenres []int64
}

// ProfileInfo is the result of a profile-info update: the fields a
// client needs to refresh its view.
type ProfileInfo struct {
	ID             int64
	Username       string
	Biography      *string
	FavoriteGenres []Genre
}
