package server

import (
	"context"
	"fmt"
	"net/http"

	"tradein/internal/domain/service/tracking"
	"tradein/pkg/httpx/reply"
	"tradein/pkg/lox"
	"tradein/pkg/rest"
)

type trackingService interface {
	Track(ctx context.Context, number string) (tracking.View, error)
}

type TrackingServer struct {
	trackingService trackingService
}

func NewTrackingServer(trackingService trackingService) TrackingServer {
	return TrackingServer{
		trackingService: trackingService,
	}
}

func (s TrackingServer) getV1Track(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	view, err := s.trackingService.Track(ctx, r.PathValue("number"))
	if err != nil {
		return asReplyError(fmt.Errorf("trackingService.Track: %w", err))
	}

	restSubmission := newRESTSubmission(view.Submission)

	reply.JSON(ctx, w, http.StatusOK, rest.TrackResponse{
		Found:          true,
		Submission:     &restSubmission,
		Timeline:       lox.Map(view.Timeline, newRESTTimelineStep),
		Items:          lox.Map(view.Items, newRESTTrackedItem),
		GradingResults: newRESTGrading(view.Grading),
	})

	return nil
}
