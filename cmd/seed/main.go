// Package main provides a tool to seed the database with test profile data.
//
// It creates a handful of users with genres, books, likes, follows, and
// friendships so profile endpoints return populated responses.
//
// Usage:
//
//	DB_PATH=~/profiles/profiles.db go run ./cmd/seed
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/watpato/profile-server/internal/domain"
	"github.com/watpato/profile-server/internal/store/sqlite"
)

func main() {
	dbPath := flag.String("db-path", "", "SQLite database path (overrides DB_PATH)")
	flag.Parse()

	path := *dbPath
	if path == "" {
		path = os.Getenv("DB_PATH")
	}
	if path == "" {
		path = os.ExpandEnv("$HOME/profiles/profiles.db")
	}

	fmt.Printf("Opening database at: %s\n", path)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(path, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	genres := seedGenres(ctx, s)
	users := seedUsers(ctx, s)
	books := seedBooks(ctx, s, users)
	seedSocialGraph(ctx, s, users, books, genres)

	fmt.Printf("\nSeeded %d users, %d genres, %d books\n", len(users), len(genres), len(books))
}

func seedGenres(ctx context.Context, s *sqlite.Store) []domain.Genre {
	names := []string{"Fantasy", "Science Fiction", "Mystery", "Romance", "Horror", "Nonfiction"}

	genres := make([]domain.Genre, 0, len(names))
	for _, name := range names {
		g := domain.Genre{Name: name}
		if err := s.CreateGenre(ctx, &g); err != nil {
			log.Printf("Skipping genre %q: %v", name, err)
			continue
		}
		genres = append(genres, g)
	}
	fmt.Printf("Created %d genres\n", len(genres))
	return genres
}

func seedUsers(ctx context.Context, s *sqlite.Store) []*domain.User {
	bios := map[string]string{
		"ada":   "I write about compilers and cats.",
		"basho": "Haiku enthusiast, occasional novelist.",
	}

	usernames := []string{"ada", "basho", "clio", "dorian"}
	users := make([]*domain.User, 0, len(usernames))
	for _, name := range usernames {
		u := &domain.User{
			Username: name,
			Email:    name + "@example.com",
		}
		if bio, ok := bios[name]; ok {
			u.Biography = &bio
		}
		if err := s.CreateUser(ctx, u); err != nil {
			log.Printf("Skipping user %q: %v", name, err)
			continue
		}
		users = append(users, u)
		fmt.Printf("Created user %s (id %d)\n", u.Username, u.ID)
	}
	return users
}

func seedBooks(ctx context.Context, s *sqlite.Store, users []*domain.User) []*domain.Book {
	if len(users) < 2 {
		return nil
	}

	describe := func(text string) *string { return &text }

	specs := []struct {
		author    *domain.User
		title     string
		desc      *string
		published bool
	}{
		{users[0], "The Garden of Forking Pointers", describe("A programmer wanders a labyrinth of her own making."), true},
		{users[0], "Notes Toward a Second Draft", nil, false},
		{users[1], "Frog Pond Variations", describe("Seventeen syllables at a time."), true},
	}

	books := make([]*domain.Book, 0, len(specs))
	for _, spec := range specs {
		b := &domain.Book{
			Title:       spec.title,
			Description: spec.desc,
			Published:   spec.published,
			AuthorID:    &spec.author.ID,
		}
		if err := s.CreateBook(ctx, b); err != nil {
			log.Printf("Skipping book %q: %v", spec.title, err)
			continue
		}
		books = append(books, b)
	}
	fmt.Printf("Created %d books\n", len(books))
	return books
}

func seedSocialGraph(ctx context.Context, s *sqlite.Store, users []*domain.User, books []*domain.Book, genres []domain.Genre) {
	if len(users) < 4 || len(books) < 3 || len(genres) < 2 {
		return
	}

	// Everyone likes the published books of the first two authors.
	for _, u := range users[2:] {
		for _, b := range books {
			if !b.Published {
				continue
			}
			if err := s.LikeBook(ctx, u.ID, b.ID); err != nil {
				log.Printf("Like failed for user %d book %d: %v", u.ID, b.ID, err)
			}
		}
	}

	// Favorite genres for the authors.
	genreIDs := []int64{genres[0].ID, genres[1].ID}
	patch := domain.ProfilePatch{FavoriteGenres: genreIDs}
	if _, err := s.UpdateProfileInfo(ctx, users[0].ID, patch); err != nil {
		log.Printf("Favorite genres failed: %v", err)
	}

	// A few follows and one friendship.
	follows := [][2]int64{
		{users[2].ID, users[0].ID},
		{users[3].ID, users[0].ID},
		{users[2].ID, users[1].ID},
	}
	for _, pair := range follows {
		if _, err := s.ToggleFollow(ctx, pair[0], pair[1]); err != nil {
			log.Printf("Follow failed %d -> %d: %v", pair[0], pair[1], err)
		}
	}

	if err := s.AddFriend(ctx, users[0].ID, users[1].ID); err != nil {
		log.Printf("Friendship failed: %v", err)
	}

	fmt.Println("Created likes, follows, and friendships")
}
