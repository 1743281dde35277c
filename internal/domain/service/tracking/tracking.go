package tracking

import (
	"context"
	"fmt"
	"strings"

	"tradein/internal/domain"
	"tradein/internal/domain/entity"
	"tradein/pkg/contextx"
	"tradein/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type BackendClient interface {
	TrackSubmission(ctx context.Context, number string) (entity.TrackResult, error)
}

// View is one tracking answer, ready for rendering. The timeline is the
// server's verbatim; Grading is nil when the backend reports no adjustments,
// suppressing the adjustment row while totals still display.
type View struct {
	Submission entity.Submission
	Timeline   []entity.TimelineStep
	Items      []entity.SubmissionItem
	Grading    *entity.GradingSummary
}

// Service is the tracking read path, independent of the cart engine.
type Service struct {
	client BackendClient
}

func NewService(client BackendClient) *Service {
	return &Service{client: client}
}

// Track queries one submission by reference number. Not-found is terminal for
// the query and distinct from a transport failure.
func (s *Service) Track(ctx context.Context, number string) (View, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return View{}, domain.NewError(errcodes.ValidationError, "submission number is required")
	}

	result, err := s.client.TrackSubmission(ctx, number)
	if err != nil {
		return View{}, fmt.Errorf("client.TrackSubmission: %w", err)
	}

	if !result.Found {
		message := result.Error
		if message == "" {
			message = "submission " + number + " not found"
		}
		return View{}, domain.NewError(errcodes.SubmissionNotFound, message)
	}

	// The server's step flags are authoritative; a malformed timeline is
	// logged and rendered anyway rather than second-guessed.
	if err := validateTimeline(result.Timeline); err != nil {
		logger(ctx).Warn("server timeline failed sanity check", "number", number, "error", err)
	}

	view := View{
		Submission: result.Submission,
		Timeline:   result.Timeline,
		Items:      result.Items,
	}

	if result.Grading != nil && result.Grading.HasAdjustments {
		view.Grading = result.Grading
	}

	return view, nil
}

//nolint:gochecknoglobals
var canonicalOrder = map[entity.SubmissionStatus]int{
	entity.StatusDraft:           0,
	entity.StatusSubmitted:       1,
	entity.StatusInTransit:       2,
	entity.StatusReceived:        3,
	entity.StatusGrading:         4,
	entity.StatusPendingApproval: 5,
	entity.StatusApproved:        6,
	entity.StatusCompleted:       7,
	entity.StatusCancelled:       7,
	entity.StatusReturned:        7,
}

func terminal(status entity.SubmissionStatus) bool {
	switch status {
	case entity.StatusCompleted, entity.StatusCancelled, entity.StatusReturned:
		return true
	}
	return false
}

// validateTimeline sanity-checks server data against the canonical sequence.
// It validates, it never derives: rendering uses the raw steps either way.
func validateTimeline(steps []entity.TimelineStep) error {
	previous := -1
	sealed := false // set once a step is incomplete or current

	for i, step := range steps {
		order, known := canonicalOrder[step.Status]
		if !known {
			return fmt.Errorf("unknown status %q at step %d", step.Status, i)
		}

		if order < previous {
			return fmt.Errorf("status %q out of order at step %d", step.Status, i)
		}
		previous = order

		if step.Status == entity.StatusDraft && i > 0 {
			return fmt.Errorf("DRAFT appears mid-timeline at step %d", i)
		}
		if terminal(step.Status) && i != len(steps)-1 {
			return fmt.Errorf("terminal status %q appears mid-timeline at step %d", step.Status, i)
		}

		if sealed && step.IsComplete {
			return fmt.Errorf("step %d marked complete beyond the current stage", i)
		}
		if step.IsCurrent || !step.IsComplete {
			sealed = true
		}
	}

	return nil
}
