package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"tradein/internal/domain/entity"
	"tradein/internal/domain/value"
	"tradein/pkg/contextx"
	"tradein/pkg/errcodes"
	"tradein/pkg/httpx/reply"
	"tradein/pkg/httpx/req"
	"tradein/pkg/rest"
)

type cartEngine interface {
	Cart(ctx context.Context, session contextx.SessionID) *entity.CartState
	AddItem(ctx context.Context, session contextx.SessionID, card entity.CatalogCard, condition value.Condition, quantity int) (*entity.CartState, error)
	RemoveItem(ctx context.Context, session contextx.SessionID, index int) (*entity.CartState, error)
	ChangeQuantity(ctx context.Context, session contextx.SessionID, index, delta int) (*entity.CartState, error)
	Clear(ctx context.Context, session contextx.SessionID) *entity.CartState
	Totals(state *entity.CartState) entity.QuoteTotals
	Eligibility(state *entity.CartState) entity.Eligibility
	MinimumValue() int64
}

type CartServer struct {
	cartEngine cartEngine
}

func NewCartServer(cartEngine cartEngine) CartServer {
	return CartServer{
		cartEngine: cartEngine,
	}
}

func (s CartServer) getV1Cart(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	session, err := sessionFromContext(ctx)
	if err != nil {
		return err
	}

	state := s.cartEngine.Cart(ctx, session)
	s.replyCart(ctx, w, state)

	return nil
}

func (s CartServer) postV1CartItems(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	session, err := sessionFromContext(ctx)
	if err != nil {
		return err
	}

	var request rest.AddItemRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	state, err := s.cartEngine.AddItem(
		ctx,
		session,
		newDomainCard(request.Card),
		value.Condition(request.Condition),
		request.Quantity,
	)
	if err != nil {
		return asReplyError(fmt.Errorf("cartEngine.AddItem: %w", err))
	}

	s.replyCart(ctx, w, state)

	return nil
}

func (s CartServer) patchV1CartItem(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	session, err := sessionFromContext(ctx)
	if err != nil {
		return err
	}

	index, err := pathIndex(r)
	if err != nil {
		return err
	}

	var request rest.ChangeQuantityRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	state, err := s.cartEngine.ChangeQuantity(ctx, session, index, request.Delta)
	if err != nil {
		return asReplyError(fmt.Errorf("cartEngine.ChangeQuantity: %w", err))
	}

	s.replyCart(ctx, w, state)

	return nil
}

func (s CartServer) deleteV1CartItem(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	session, err := sessionFromContext(ctx)
	if err != nil {
		return err
	}

	index, err := pathIndex(r)
	if err != nil {
		return err
	}

	state, err := s.cartEngine.RemoveItem(ctx, session, index)
	if err != nil {
		return asReplyError(fmt.Errorf("cartEngine.RemoveItem: %w", err))
	}

	s.replyCart(ctx, w, state)

	return nil
}

func (s CartServer) deleteV1Cart(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	session, err := sessionFromContext(ctx)
	if err != nil {
		return err
	}

	state := s.cartEngine.Clear(ctx, session)
	s.replyCart(ctx, w, state)

	return nil
}

func (s CartServer) getV1CartQuote(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	session, err := sessionFromContext(ctx)
	if err != nil {
		return err
	}

	state := s.cartEngine.Cart(ctx, session)

	reply.JSON(ctx, w, http.StatusOK, newRESTQuote(
		s.cartEngine.Totals(state),
		s.cartEngine.Eligibility(state),
		s.cartEngine.MinimumValue(),
	))

	return nil
}

func (s CartServer) replyCart(ctx context.Context, w http.ResponseWriter, state *entity.CartState) {
	reply.JSON(ctx, w, http.StatusOK, newRESTCart(
		state,
		s.cartEngine.Totals(state),
		s.cartEngine.Eligibility(state),
		s.cartEngine.MinimumValue(),
	))
}

func sessionFromContext(ctx context.Context) (contextx.SessionID, error) {
	session, err := contextx.SessionIDFromContext(ctx)
	if err != nil || session == "" {
		return "", failure.NewInvalidArgumentError(
			"session id missing",
			failure.WithCode(errcodes.MissingSession),
			failure.WithDescription("X-Session-Id header is required"),
		)
	}

	return session, nil
}

func pathIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, failure.NewInvalidArgumentError(
			fmt.Errorf("strconv.Atoi(index): %w", err).Error(),
			failure.WithCode(errcodes.InvalidCartIndex),
			failure.WithDescription("cart item index must be an integer"),
		)
	}

	return index, nil
}
