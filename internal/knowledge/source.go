// internal/knowledge/source.go
package knowledge

import (
	"context"

	"faq-service/internal/models"
)

// PageSize is the number of records requested per page from every source.
const PageSize = 100

// Page is one batch of records from the knowledge source.
type Page struct {
	Entries    []models.QAEntry
	NextCursor string
	HasMore    bool
}

// Source is a paginated query interface over the external knowledge base.
// An empty cursor requests the first page.
type Source interface {
	FetchPage(ctx context.Context, cursor string) (Page, error)
}

// Pages drives a Source as a finite, restartable page sequence terminated by
// the source's has-more flag.
type Pages struct {
	source Source
	cursor string
	done   bool
}

func NewPages(source Source) *Pages {
	return &Pages{source: source}
}

// Next fetches the next page. It returns nil once the sequence is exhausted.
// A fetch error ends the sequence; Restart begins it again from the first page.
func (p *Pages) Next(ctx context.Context) (*Page, error) {
	if p.done {
		return nil, nil
	}

	page, err := p.source.FetchPage(ctx, p.cursor)
	if err != nil {
		p.done = true
		return nil, err
	}

	p.cursor = page.NextCursor
	if !page.HasMore {
		p.done = true
	}
	return &page, nil
}

// Restart resets the sequence to the first page.
func (p *Pages) Restart() {
	p.cursor = ""
	p.done = false
}
