package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/watpato/profile-server/internal/domain"
	"github.com/watpato/profile-server/internal/store"
)

func TestCreateGenre_Duplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestGenre(t, s, "Horror")

	err := s.CreateGenre(ctx, &domain.Genre{Name: "Horror"})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestListGenres(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestGenre(t, s, "Mystery")
	createTestGenre(t, s, "Fantasy")
	createTestGenre(t, s, "Romance")

	genres, err := s.ListGenres(ctx)
	if err != nil {
		t.Fatalf("ListGenres: %v", err)
	}
	if len(genres) != 3 {
		t.Fatalf("ListGenres: got %d genres, want 3", len(genres))
	}

	// Ordered by name.
	names := []string{genres[0].Name, genres[1].Name, genres[2].Name}
	want := []string{"Fantasy", "Mystery", "Romance"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("genre %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFavoriteGenres_Empty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := createTestUser(t, s, "nogenres")

	genres, err := s.FavoriteGenres(ctx, id)
	if err != nil {
		t.Fatalf("FavoriteGenres: %v", err)
	}
	if len(genres) != 0 {
		t.Errorf("expected no favorites, got %v", genres)
	}
	if genres == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestCountGenres(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fantasy := createTestGenre(t, s, "Fantasy")
	mystery := createTestGenre(t, s, "Mystery")

	tests := []struct {
		name string
		ids  []int64
		want int
	}{
		{"all existing", []int64{fantasy, mystery}, 2},
		{"one missing", []int64{fantasy, mystery + 100}, 1},
		{"all missing", []int64{9998, 9999}, 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.CountGenres(ctx, tt.ids)
			if err != nil {
				t.Fatalf("CountGenres: %v", err)
			}
			if got != tt.want {
				t.Errorf("CountGenres(%v): got %d, want %d", tt.ids, got, tt.want)
			}
		})
	}
}
