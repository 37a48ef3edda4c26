// internal/knowledge/postgres.go
package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"faq-service/internal/models"
)

// PostgresSource reads entries from a relational table using keyset
// pagination on the primary key. The cursor is the last seen id.
type PostgresSource struct {
	db    *sql.DB
	table string
}

func NewPostgresSource(db *sql.DB, table string) *PostgresSource {
	return &PostgresSource{db: db, table: table}
}

func (s *PostgresSource) FetchPage(ctx context.Context, cursor string) (Page, error) {
	afterID := int64(0)
	if cursor != "" {
		parsed, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil {
			return Page{}, fmt.Errorf("invalid cursor %q: %w", cursor, err)
		}
		afterID = parsed
	}

	query := fmt.Sprintf(`
		SELECT id, question, answer, image_url, pdf_url, link_url, link_text
		FROM %s
		WHERE id > $1 AND question IS NOT NULL AND question <> ''
		ORDER BY id
		LIMIT $2`, s.table)

	rows, err := s.db.QueryContext(ctx, query, afterID, PageSize)
	if err != nil {
		return Page{}, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var (
		entries []models.QAEntry
		lastID  int64
	)
	for rows.Next() {
		var (
			id                                  int64
			question, answer                    string
			imageURL, pdfURL, linkURL, linkText sql.NullString
		)
		if err := rows.Scan(&id, &question, &answer, &imageURL, &pdfURL, &linkURL, &linkText); err != nil {
			return Page{}, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, models.QAEntry{
			Question: question,
			Answer:   answer,
			ImageURL: imageURL.String,
			PDFURL:   pdfURL.String,
			LinkURL:  linkURL.String,
			LinkText: linkText.String,
		})
		lastID = id
	}
	if err := rows.Err(); err != nil {
		return Page{}, fmt.Errorf("failed to iterate entries: %w", err)
	}

	page := Page{Entries: entries}
	if len(entries) == PageSize {
		page.NextCursor = strconv.FormatInt(lastID, 10)
		page.HasMore = true
	}
	return page, nil
}

var _ Source = (*PostgresSource)(nil)
