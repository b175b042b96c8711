// Package listing is the data-access client the screens use to load venue
// listings. Screens only observe its outcome as loading, error or data.
package listing

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/juanibiapina/venue/internal/storage"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrEmpty is reported when a query succeeds but returns no venues.
var ErrEmpty = errors.New("no venues found")

// Source is the storage the client reads from.
type Source interface {
	ListVenues(ctx context.Context, f storage.VenueFilter) ([]storage.Venue, error)
	CountVenues(ctx context.Context, f storage.VenueFilter) (int, error)
}

// Query selects a page of venues. With PriceBounded unset a zero price
// bound means no constraint.
type Query struct {
	Kind         storage.Kind
	MinPrice     int
	MaxPrice     int
	PriceBounded bool
	Search       string
	Limit        int
	Offset       int
}

// Result is what a query produced. Err is set on failure; Data may be empty.
type Result struct {
	Query Query
	Data  []storage.Venue
	Total int
	Err   error
}

// Client runs listing queries.
type Client struct {
	source Source
}

// NewClient returns a client reading from source.
func NewClient(source Source) *Client {
	return &Client{source: source}
}

// Query loads one page of venues. A non-empty Search ranks matches by fuzzy
// score over the venue name, so paging happens after ranking.
func (c *Client) Query(ctx context.Context, q Query) Result {
	filter := storage.VenueFilter{
		Kind:         q.Kind,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		PriceBounded: q.PriceBounded,
	}

	if q.Search != "" {
		all, err := c.source.ListVenues(ctx, filter)
		if err != nil {
			return Result{Query: q, Err: fmt.Errorf("failed to load venues: %w", err)}
		}
		matches := rank(q.Search, all)
		return Result{Query: q, Data: page(matches, q.Limit, q.Offset), Total: len(matches)}
	}

	total, err := c.source.CountVenues(ctx, filter)
	if err != nil {
		return Result{Query: q, Err: fmt.Errorf("failed to count venues: %w", err)}
	}
	filter.Limit = q.Limit
	filter.Offset = q.Offset
	venues, err := c.source.ListVenues(ctx, filter)
	if err != nil {
		return Result{Query: q, Err: fmt.Errorf("failed to load venues: %w", err)}
	}
	return Result{Query: q, Data: venues, Total: total}
}

// rank keeps venues whose name fuzzily matches term, best match first.
func rank(term string, venues []storage.Venue) []storage.Venue {
	type scored struct {
		venue storage.Venue
		score int
	}
	var hits []scored
	for _, v := range venues {
		score := fuzzy.RankMatchNormalizedFold(term, v.Name)
		if score < 0 {
			continue
		}
		hits = append(hits, scored{venue: v, score: score})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score < hits[j].score
	})

	out := make([]storage.Venue, len(hits))
	for i, h := range hits {
		out[i] = h.venue
	}
	return out
}

func page(venues []storage.Venue, limit, offset int) []storage.Venue {
	if offset >= len(venues) {
		return nil
	}
	if offset < 0 {
		offset = 0
	}
	end := len(venues)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return venues[offset:end]
}
