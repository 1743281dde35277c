package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tradein/internal/domain"
	"tradein/internal/domain/entity"
	"tradein/internal/domain/value"
	"tradein/pkg/errcodes"
)

type fakeBackend struct {
	result entity.TrackResult
	err    error
	gotNum string
}

func (f *fakeBackend) TrackSubmission(_ context.Context, number string) (entity.TrackResult, error) {
	f.gotNum = number

	return f.result, f.err
}

func gradingTimeline() []entity.TimelineStep {
	return []entity.TimelineStep{
		{Status: entity.StatusSubmitted, Label: "Submitted", IsComplete: true},
		{Status: entity.StatusInTransit, Label: "In transit", IsComplete: true},
		{Status: entity.StatusReceived, Label: "Received", IsComplete: true},
		{Status: entity.StatusGrading, Label: "Grading", IsCurrent: true},
		{Status: entity.StatusPendingApproval, Label: "Pending approval"},
		{Status: entity.StatusApproved, Label: "Approved"},
		{Status: entity.StatusCompleted, Label: "Completed"},
	}
}

func TestTrackFound(t *testing.T) {
	rq := require.New(t)

	finalPrice := int64(350)
	backend := &fakeBackend{
		result: entity.TrackResult{
			Found:      true,
			Submission: entity.Submission{Number: "TRD-2024-001", Status: entity.StatusGrading},
			Timeline:   gradingTimeline(),
			Items: []entity.SubmissionItem{
				{CardID: "card-1", QuotedPrice: 400, FinalPrice: &finalPrice, ClaimedCondition: value.ConditionNearMint, ActualCondition: value.ConditionLightlyPlayed},
				{CardID: "card-2", QuotedPrice: 200},
			},
			Grading: &entity.GradingSummary{OriginalTotal: 600, AdjustedTotal: 550, AdjustedItems: 1, HasAdjustments: true},
		},
	}

	service := NewService(backend)

	view, err := service.Track(context.Background(), "  TRD-2024-001  ")
	rq.NoError(err)
	rq.Equal("TRD-2024-001", backend.gotNum) // trimmed before the query
	rq.Equal("TRD-2024-001", view.Submission.Number)
	rq.Len(view.Timeline, 7)
	rq.NotNil(view.Grading)

	// Graded price wins for display; untouched items keep the quote.
	rq.EqualValues(350, view.Items[0].DisplayPrice())
	rq.True(view.Items[0].Adjusted())
	rq.EqualValues(200, view.Items[1].DisplayPrice())
	rq.False(view.Items[1].Adjusted())
}

func TestTrackGradingSuppressedWithoutAdjustments(t *testing.T) {
	rq := require.New(t)

	backend := &fakeBackend{
		result: entity.TrackResult{
			Found:      true,
			Submission: entity.Submission{Number: "TRD-1"},
			Grading:    &entity.GradingSummary{OriginalTotal: 600, AdjustedTotal: 600},
		},
	}

	service := NewService(backend)

	view, err := service.Track(context.Background(), "TRD-1")
	rq.NoError(err)
	rq.Nil(view.Grading)
}

func TestTrackNotFoundIsTerminal(t *testing.T) {
	rq := require.New(t)

	backend := &fakeBackend{
		result: entity.TrackResult{Found: false, Error: "no submission with that number"},
	}

	service := NewService(backend)

	_, err := service.Track(context.Background(), "TRD-MISSING")
	rq.True(domain.HasCode(err, errcodes.SubmissionNotFound))
	rq.ErrorContains(err, "no submission with that number")
}

func TestTrackEmptyNumber(t *testing.T) {
	rq := require.New(t)
	service := NewService(&fakeBackend{})

	_, err := service.Track(context.Background(), "   ")
	rq.True(domain.HasCode(err, errcodes.ValidationError))
}

func TestTrackTransportFailure(t *testing.T) {
	rq := require.New(t)

	backend := &fakeBackend{err: errors.New("backend down")}
	service := NewService(backend)

	_, err := service.Track(context.Background(), "TRD-1")
	rq.Error(err)
	rq.False(domain.HasCode(err, errcodes.SubmissionNotFound))
}

func TestTrackRendersBadTimelineVerbatim(t *testing.T) {
	rq := require.New(t)

	// Complete beyond the current step: logged, never corrected.
	timeline := []entity.TimelineStep{
		{Status: entity.StatusSubmitted, IsComplete: true},
		{Status: entity.StatusInTransit, IsCurrent: true},
		{Status: entity.StatusReceived, IsComplete: true},
	}

	backend := &fakeBackend{
		result: entity.TrackResult{
			Found:      true,
			Submission: entity.Submission{Number: "TRD-1"},
			Timeline:   timeline,
		},
	}

	service := NewService(backend)

	view, err := service.Track(context.Background(), "TRD-1")
	rq.NoError(err)
	rq.Equal(timeline, view.Timeline)
}

func TestValidateTimeline(t *testing.T) {
	tests := []struct {
		name    string
		steps   []entity.TimelineStep
		wantErr string
	}{
		{
			name:  "canonical grading timeline",
			steps: gradingTimeline(),
		},
		{
			name: "terminal cancelled as last step",
			steps: []entity.TimelineStep{
				{Status: entity.StatusSubmitted, IsComplete: true},
				{Status: entity.StatusCancelled, IsCurrent: true},
			},
		},
		{
			name:  "empty timeline",
			steps: nil,
		},
		{
			name: "unknown status",
			steps: []entity.TimelineStep{
				{Status: "SHIPPED"},
			},
			wantErr: "unknown status",
		},
		{
			name: "out of order",
			steps: []entity.TimelineStep{
				{Status: entity.StatusReceived, IsComplete: true},
				{Status: entity.StatusSubmitted, IsCurrent: true},
			},
			wantErr: "out of order",
		},
		{
			name: "draft mid-timeline",
			steps: []entity.TimelineStep{
				{Status: entity.StatusDraft, IsComplete: true},
				{Status: entity.StatusDraft},
			},
			wantErr: "DRAFT appears mid-timeline",
		},
		{
			name: "terminal mid-timeline",
			steps: []entity.TimelineStep{
				{Status: entity.StatusCompleted, IsComplete: true},
				{Status: entity.StatusReturned},
			},
			wantErr: "terminal status",
		},
		{
			name: "complete beyond current",
			steps: []entity.TimelineStep{
				{Status: entity.StatusSubmitted, IsCurrent: true},
				{Status: entity.StatusInTransit, IsComplete: true},
			},
			wantErr: "beyond the current stage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			err := validateTimeline(tt.steps)
			if tt.wantErr == "" {
				rq.NoError(err)
				return
			}
			rq.ErrorContains(err, tt.wantErr)
		})
	}
}
