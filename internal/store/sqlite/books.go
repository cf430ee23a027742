package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/watpato/profile-server/internal/domain"
	"github.com/watpato/profile-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, title, description, cover_image, published, created_at, author_id`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		description sql.NullString
		coverImage  sql.NullString
		published   int
		createdAt   string
		authorID    sql.NullInt64
	)

	err := scanner.Scan(
		&b.ID,
		&b.Title,
		&description,
		&coverImage,
		&published,
		&createdAt,
		&authorID,
	)
	if err != nil {
		return nil, err
	}

	b.Description = stringPtr(description)
	b.CoverImage = stringPtr(coverImage)
	b.Published = published != 0
	b.AuthorID = int64Ptr(authorID)

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBook inserts a new book and assigns the generated ID.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	if book.CreatedAt.IsZero() {
		book.CreatedAt = time.Now().UTC()
	}

	var authorID sql.NullInt64
	if book.AuthorID != nil {
		authorID = sql.NullInt64{Int64: *book.AuthorID, Valid: true}
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO books (title, description, cover_image, published, created_at, author_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		book.Title,
		nullableString(book.Description),
		nullableString(book.CoverImage),
		boolToInt(book.Published),
		formatTime(book.CreatedAt),
		authorID,
	)
	if err != nil {
		return err
	}

	book.ID, err = result.LastInsertId()
	return err
}

// LikeBook records that a user liked a book.
// Returns store.ErrAlreadyExists if the like is already recorded.
func (s *Store) LikeBook(ctx context.Context, userID, bookID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO book_likes (user_id, book_id, created_at)
		VALUES (?, ?, ?)`,
		userID, bookID, formatTime(time.Now()))
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// LikedBooks returns the books a user liked, newest like first.
// Books whose author account was deleted no longer have an author name to
// show and are excluded.
func (s *Store) LikedBooks(ctx context.Context, userID int64) ([]domain.LikedBook, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.title, b.description, b.cover_image, u.username
		FROM books b
		JOIN book_likes l ON l.book_id = b.id
		JOIN users u ON u.id = b.author_id
		WHERE l.user_id = ?
		ORDER BY l.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []domain.LikedBook{}
	for rows.Next() {
		var (
			b           domain.LikedBook
			description sql.NullString
			coverImage  sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Title, &description, &coverImage, &b.AuthorName); err != nil {
			return nil, err
		}
		b.Description = stringPtr(description)
		b.CoverImage = stringPtr(coverImage)
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// BooksByAuthor returns the books written by a user, newest first.
// With publishedOnly set, unpublished drafts are excluded.
func (s *Store) BooksByAuthor(ctx context.Context, authorID int64, publishedOnly bool) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE author_id = ?`
	if publishedOnly {
		query += ` AND published = 1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}
