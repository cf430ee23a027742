package domain

import "time"

// Book represents a book authored by a user. Books are created by the
// catalog service; the profile contract only reads them.
type Book struct {
	ID          int64
	Title       string
	Description *string
	CoverImage  *string
	Published   bool
	CreatedAt   time.Time
	// AuthorID is nil when the author account has been removed.
	AuthorID *int64
}

// LikedBook is a book summary joined with its author's username, as
// shown in the liked-books section of a profile. Likes whose book has
// a dangling author reference are filtered out before this is built.
type LikedBook struct {
	ID          int64
	Title       string
	Description *string
	CoverImage  *string
	AuthorName  string
}
