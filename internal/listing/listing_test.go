package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/juanibiapina/venue/internal/storage"
)

type fakeSource struct {
	venues []storage.Venue
	err    error
	calls  []storage.VenueFilter
}

func (f *fakeSource) ListVenues(ctx context.Context, filter storage.VenueFilter) ([]storage.Venue, error) {
	f.calls = append(f.calls, filter)
	if f.err != nil {
		return nil, f.err
	}
	out := f.venues
	if filter.Limit > 0 {
		out = page(out, filter.Limit, filter.Offset)
	}
	return out, nil
}

func (f *fakeSource) CountVenues(ctx context.Context, filter storage.VenueFilter) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.venues), nil
}

func venues(names ...string) []storage.Venue {
	out := make([]storage.Venue, len(names))
	for i, n := range names {
		out[i] = storage.Venue{ID: n, Name: n}
	}
	return out
}

func TestClient_Query(t *testing.T) {
	src := &fakeSource{venues: venues("Grand Hall", "Garden Pavilion", "Atrium")}
	c := NewClient(src)

	r := c.Query(context.Background(), Query{Kind: storage.KindEventCenter, Limit: 2, Offset: 0})
	if r.Err != nil {
		t.Fatalf("Query() error = %v", r.Err)
	}
	if r.Total != 3 || len(r.Data) != 2 {
		t.Errorf("Query() total=%d len=%d, want 3 and 2", r.Total, len(r.Data))
	}
	last := src.calls[len(src.calls)-1]
	if last.Kind != storage.KindEventCenter || last.Limit != 2 {
		t.Errorf("source filter = %+v", last)
	}
}

func TestClient_QueryPassesPriceBounds(t *testing.T) {
	src := &fakeSource{venues: venues("Grand Hall")}
	c := NewClient(src)

	c.Query(context.Background(), Query{MinPrice: 0, MaxPrice: 0, PriceBounded: true, Limit: 5})
	last := src.calls[len(src.calls)-1]
	if !last.PriceBounded || last.MaxPrice != 0 {
		t.Errorf("source filter = %+v, want bounded at zero", last)
	}
}

func TestClient_QuerySearch(t *testing.T) {
	src := &fakeSource{venues: venues("Grand Hall", "Garden Pavilion", "Atrium", "Harbour Hall")}
	c := NewClient(src)

	r := c.Query(context.Background(), Query{Search: "hall", Limit: 10})
	if r.Err != nil {
		t.Fatal(r.Err)
	}
	if r.Total != 2 {
		t.Fatalf("Total = %d, want 2: %+v", r.Total, r.Data)
	}
	for _, v := range r.Data {
		if v.Name != "Grand Hall" && v.Name != "Harbour Hall" {
			t.Errorf("unexpected match %q", v.Name)
		}
	}
	if src.calls[0].Limit != 0 {
		t.Error("search must load the unpaged list before ranking")
	}
}

func TestClient_QueryError(t *testing.T) {
	boom := errors.New("disk on fire")
	c := NewClient(&fakeSource{err: boom})

	r := c.Query(context.Background(), Query{Limit: 5})
	if !errors.Is(r.Err, boom) {
		t.Errorf("Query() error = %v, want wrapping %v", r.Err, boom)
	}
}

func TestView_Phase(t *testing.T) {
	q := Query{Limit: 5}

	tests := []struct {
		name string
		view View
		want Phase
	}{
		{name: "loading", view: View{}.Start(q), want: PhaseLoading},
		{name: "error", view: View{}.Start(q).Finish(Result{Query: q, Err: errors.New("x")}), want: PhaseError},
		{name: "empty data is an error", view: View{}.Start(q).Finish(Result{Query: q}), want: PhaseError},
		{name: "data", view: View{}.Start(q).Finish(Result{Query: q, Data: venues("a")}), want: PhaseReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.view.Phase(); got != tt.want {
				t.Errorf("Phase() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestView_FinishDropsStaleResults(t *testing.T) {
	older := Query{Limit: 5, Offset: 0}
	newer := Query{Limit: 5, Offset: 5}

	v := View{}.Start(older).Start(newer)
	v = v.Finish(Result{Query: older, Data: venues("stale")})
	if !v.Loading {
		t.Fatal("stale result finished the newer query")
	}
	v = v.Finish(Result{Query: newer, Data: venues("fresh")})
	if v.Loading || v.Result.Data[0].Name != "fresh" {
		t.Errorf("view = %+v", v)
	}
}

func TestView_ErrorEmpty(t *testing.T) {
	q := Query{}
	v := View{}.Start(q).Finish(Result{Query: q})
	if !errors.Is(v.Error(), ErrEmpty) {
		t.Errorf("Error() = %v, want ErrEmpty", v.Error())
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(20000); got != "$20,000" {
		t.Errorf("FormatPrice(20000) = %q", got)
	}
	if got := FormatCount(1234567); got != "1,234,567" {
		t.Errorf("FormatCount() = %q", got)
	}
}
