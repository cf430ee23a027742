package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/watpato/profile-server/internal/domain"
	"github.com/watpato/profile-server/internal/store"
)

// CreateGenre inserts a new genre and assigns the generated ID.
// Returns store.ErrAlreadyExists if the name is taken.
func (s *Store) CreateGenre(ctx context.Context, g *domain.Genre) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO genres (name) VALUES (?)`, g.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	g.ID, err = result.LastInsertId()
	return err
}

// ListGenres returns all genres ordered by name.
func (s *Store) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name FROM genres ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectGenres(rows)
}

// FavoriteGenres returns the favorite genres of a user ordered by name.
func (s *Store) FavoriteGenres(ctx context.Context, userID int64) ([]domain.Genre, error) {
	return favoriteGenres(ctx, s.db, userID)
}

// favoriteGenres is shared with UpdateProfileInfo, which reads the favorite
// set inside its transaction.
func favoriteGenres(ctx context.Context, q querier, userID int64) ([]domain.Genre, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT g.id, g.name
		FROM genres g
		JOIN user_fav_genres f ON f.genre_id = g.id
		WHERE f.user_id = ?
		ORDER BY g.name ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectGenres(rows)
}

// CountGenres returns how many of the given IDs exist in the genres table.
func (s *Store) CountGenres(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM genres WHERE id IN (`+placeholders+`)`, args...).
		Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func collectGenres(rows *sql.Rows) ([]domain.Genre, error) {
	genres := []domain.Genre{}
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}
