package domain

// Genre represents a content category users can mark as a favorite.
// Genres are read-only from this service's perspective; they are
// referenced by favorite-genre associations, never created here.
type Genre struct {
	ID   int64
	Name string
}
