package listing

// Phase is what the screen should show for a listing.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseReady
)

// View tracks one listing on screen.
type View struct {
	Loading bool
	Result  Result
}

// Start marks a new query as in flight.
func (v View) Start(q Query) View {
	return View{Loading: true, Result: Result{Query: q}}
}

// Finish records the result of the latest query. Results for an older query
// are dropped so a slow response cannot overwrite a newer one.
func (v View) Finish(r Result) View {
	if r.Query != v.Result.Query {
		return v
	}
	return View{Loading: false, Result: r}
}

// Phase resolves the view: loading while in flight, error on failure or an
// empty page, otherwise ready.
func (v View) Phase() Phase {
	switch {
	case v.Loading:
		return PhaseLoading
	case v.Result.Err != nil, len(v.Result.Data) == 0:
		return PhaseError
	default:
		return PhaseReady
	}
}

// Error returns the message to show inline in PhaseError.
func (v View) Error() error {
	if v.Result.Err != nil {
		return v.Result.Err
	}
	if len(v.Result.Data) == 0 && !v.Loading {
		return ErrEmpty
	}
	return nil
}
