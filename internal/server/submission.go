package server

import (
	"context"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"tradein/internal/domain/entity"
	"tradein/internal/domain/service/submission"
	"tradein/pkg/contextx"
	"tradein/pkg/errcodes"
	"tradein/pkg/httpx/reply"
	"tradein/pkg/httpx/req"
	"tradein/pkg/rest"
)

type submissionWorkflow interface {
	Submit(ctx context.Context, session contextx.SessionID, request submission.Request) (submission.Result, error)
}

type SubmissionServer struct {
	workflow submissionWorkflow
}

func NewSubmissionServer(workflow submissionWorkflow) SubmissionServer {
	return SubmissionServer{
		workflow: workflow,
	}
}

func (s SubmissionServer) postV1Submissions(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	session, err := sessionFromContext(ctx)
	if err != nil {
		return err
	}

	var request rest.SubmissionRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	payoutType := entity.PayoutType(request.PayoutType)
	if payoutType != entity.PayoutStoreCredit && payoutType != entity.PayoutBankTransfer {
		return failure.NewInvalidArgumentError(
			"unknown payout type: "+request.PayoutType,
			failure.WithCode(errcodes.InvalidPayoutType),
			failure.WithDescription("payoutType must be STORE_CREDIT or BANK"),
		)
	}

	result, err := s.workflow.Submit(ctx, session, submission.Request{
		Email:          request.Email,
		Phone:          request.Phone,
		ContactChannel: request.ContactChannel,
		PayoutType:     payoutType,
		AccountHolder:  request.AccountHolder,
		SortCode:       request.SortCode,
		AccountNumber:  request.AccountNumber,
	})
	if err != nil {
		return asReplyError(fmt.Errorf("workflow.Submit: %w", err))
	}

	reply.JSON(ctx, w, http.StatusCreated, rest.SubmissionResponse{
		SubmissionNumber: result.Submission.Number,
		Status:           string(result.Submission.Status),
		QuotedTotal:      result.Submission.QuotedTotal,
		BonusAmount:      result.Submission.BonusAmount,
		Links: rest.SubmissionLinks{
			Tracking:             result.Links.Tracking,
			PackingSlip:          result.Links.PackingSlip,
			ShippingInstructions: result.Links.ShippingInstructions,
		},
	})

	return nil
}
