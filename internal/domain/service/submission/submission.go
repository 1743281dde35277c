package submission

import (
	"context"
	"fmt"

	"tradein/internal/domain"
	"tradein/internal/domain/entity"
	"tradein/pkg/contextx"
	"tradein/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// State tracks one submission attempt through its phases.
type State string

const (
	StateIdle       State = "IDLE"
	StateValidating State = "VALIDATING"
	StateSubmitting State = "SUBMITTING"
	StateSuccess    State = "SUCCESS"
	StateFailed     State = "FAILED"
)

type BackendClient interface {
	CreateSubmission(ctx context.Context, req entity.SubmissionRequest) (entity.CreatedSubmission, error)
	PackingSlipURL(number string) string
	ShippingInstructionsURL(number string) string
}

type CartEngine interface {
	Cart(ctx context.Context, session contextx.SessionID) *entity.CartState
	Eligibility(state *entity.CartState) entity.Eligibility
	Clear(ctx context.Context, session contextx.SessionID) *entity.CartState
}

// Links are derived, parameterized by the submission number.
type Links struct {
	Tracking             string
	PackingSlip          string
	ShippingInstructions string
}

// Result is a successful attempt's outcome.
type Result struct {
	Submission entity.CreatedSubmission
	Links      Links
}

// Workflow drives one attempt: validate, post, reset the cart on success.
// Failure leaves the cart untouched so the shopper can retry as-is.
type Workflow struct {
	backend      BackendClient
	cart         CartEngine
	trackingPath string
}

func NewWorkflow(backend BackendClient, cart CartEngine) *Workflow {
	return &Workflow{
		backend:      backend,
		cart:         cart,
		trackingPath: "/track?number=",
	}
}

func (w *Workflow) WithTrackingPath(path string) *Workflow {
	w.trackingPath = path
	return w
}

func (w *Workflow) Submit(ctx context.Context, session contextx.SessionID, req Request) (Result, error) {
	state := w.cart.Cart(ctx, session)

	w.transition(ctx, StateIdle, StateValidating)

	if len(state.Items) == 0 {
		return Result{}, domain.NewError(errcodes.ValidationError, "cart is empty")
	}

	if eligibility := w.cart.Eligibility(state); !eligibility.Eligible {
		if eligibility.Shortfall > 0 {
			return Result{}, domain.NewError(errcodes.CartBelowMinimum,
				fmt.Sprintf("cart is %d below the minimum trade-in value", eligibility.Shortfall))
		}
		return Result{}, domain.NewError(errcodes.CartOverItemLimit, "cart exceeds the submission item limit")
	}

	contact, bank, err := validateRequest(req)
	if err != nil {
		return Result{}, err
	}

	w.transition(ctx, StateValidating, StateSubmitting)

	created, err := w.backend.CreateSubmission(ctx, entity.SubmissionRequest{
		Contact:    contact,
		PayoutType: req.PayoutType,
		Bank:       bank,
		Items:      state.Items,
	})
	if err != nil {
		// No cart mutation on failure; the attempt is retryable as-is.
		w.transition(ctx, StateSubmitting, StateFailed)
		return Result{}, fmt.Errorf("backend.CreateSubmission: %w", err)
	}

	if created.Number == "" {
		w.transition(ctx, StateSubmitting, StateFailed)
		return Result{}, domain.NewError(errcodes.SubmissionRejected, "backend response missing submission number")
	}

	w.cart.Clear(ctx, session)
	w.transition(ctx, StateSubmitting, StateSuccess)

	logger(ctx).Info("submission created",
		"number", created.Number,
		"quoted_total", created.QuotedTotal,
	)

	return Result{
		Submission: created,
		Links: Links{
			Tracking:             w.trackingPath + created.Number,
			PackingSlip:          w.backend.PackingSlipURL(created.Number),
			ShippingInstructions: w.backend.ShippingInstructionsURL(created.Number),
		},
	}, nil
}

func (w *Workflow) transition(ctx context.Context, from, to State) {
	logger(ctx).Debug("submission state", "from", from, "to", to)
}
