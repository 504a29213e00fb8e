package passclient

import (
	"context"
	"errors"
	"sync"

	"gatepass/internal/domain/models"
)

// State of the pass lifecycle.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateIssued     State = "issued"
)

var (
	// ErrSubmissionInFlight rejects a second submit while one is pending.
	ErrSubmissionInFlight = errors.New("passclient: submission already in progress")
	// ErrAlreadyIssued rejects submitting without resetting first.
	ErrAlreadyIssued = errors.New("passclient: pass already issued, reset first")
)

// Issuer mints a pass from a validated request.
type Issuer interface {
	CreateTrip(ctx context.Context, req models.TripRequest) (models.IssuedPass, error)
}

// Lifecycle drives Editing -> Submitting -> Issued. A failed issuance
// returns to Editing with nothing retained; Reset discards the issued
// artifact for "create another".
type Lifecycle struct {
	mu     sync.Mutex
	state  State
	form   *Form
	issuer Issuer
	pass   *models.IssuedPass

	// onRoute, when set, receives the route endpoints after a successful
	// issuance to feed the route simulation.
	onRoute func(from, to string)
}

func NewLifecycle(form *Form, issuer Issuer) *Lifecycle {
	return &Lifecycle{
		state:  StateEditing,
		form:   form,
		issuer: issuer,
	}
}

func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Pass returns the issued artifact while in Issued state.
func (l *Lifecycle) Pass() (models.IssuedPass, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pass == nil {
		return models.IssuedPass{}, false
	}
	return *l.pass, true
}

// OnRouteSearch registers the route simulation trigger.
func (l *Lifecycle) OnRouteSearch(fn func(from, to string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onRoute = fn
}

// Submit validates the form and, when all fields pass, runs the issuance
// call. On any invalid field it stays in Editing and returns the first
// error found. On transport or server failure it returns to Editing and
// retains nothing.
func (l *Lifecycle) Submit(ctx context.Context) error {
	l.mu.Lock()
	switch l.state {
	case StateSubmitting:
		l.mu.Unlock()
		return ErrSubmissionInFlight
	case StateIssued:
		l.mu.Unlock()
		return ErrAlreadyIssued
	}

	if err := l.form.Validate(); err != nil {
		l.mu.Unlock()
		return err
	}

	req := l.form.BuildRequest()
	l.state = StateSubmitting
	l.mu.Unlock()

	pass, err := l.issuer.CreateTrip(ctx, req)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		l.state = StateEditing
		l.pass = nil
		return err
	}

	l.state = StateIssued
	l.pass = &pass

	if l.onRoute != nil && req.RouteFrom != "" && req.RouteTo != "" {
		go l.onRoute(req.RouteFrom, req.RouteTo)
	}
	return nil
}

// Reset discards the issued pass and returns to Editing. Only meaningful
// from Issued; a no-op otherwise.
func (l *Lifecycle) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateIssued {
		return
	}
	l.state = StateEditing
	l.pass = nil
}
