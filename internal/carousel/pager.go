package carousel

// Pager bundles a list, its fixed page size and the current State.
// It is a value type: Dispatch returns the updated pager and leaves the
// receiver untouched, matching how bubbletea models are threaded through Update.
type Pager[T any] struct {
	items    []T
	pageSize int
	state    State
}

// NewPager starts at page 0.
func NewPager[T any](items []T, pageSize int) Pager[T] {
	return Pager[T]{
		items:    items,
		pageSize: pageSize,
		state:    NewState(len(items), pageSize),
	}
}

// Items returns the full list.
func (p Pager[T]) Items() []T { return p.items }

// PageSize returns the fixed page size.
func (p Pager[T]) PageSize() int { return p.pageSize }

// State returns the current page state.
func (p Pager[T]) State() State { return p.state }

// Page returns the current page index.
func (p Pager[T]) Page() int { return p.state.Page }

// TotalPages returns the number of pages.
func (p Pager[T]) TotalPages() int { return p.state.TotalPages }

// Visible returns the window for the current page.
func (p Pager[T]) Visible() []T {
	return Window(p.items, p.pageSize, p.state.Page)
}

// Dispatch applies event and returns the resulting pager.
func (p Pager[T]) Dispatch(event Event) Pager[T] {
	p.state = Reduce(p.state, event)
	return p
}
