package cart

import (
	"context"
	"sync"

	"tradein/internal/domain"
	"tradein/internal/domain/entity"
	"tradein/internal/domain/value"
	"tradein/pkg/contextx"
	"tradein/pkg/errcodes"
)

// SchemaVersion tags persisted carts. A stored cart with any other version is
// discarded and storage reset; there is no format upgrade path.
const SchemaVersion = 2

const (
	minQuantity  = 1
	maxQuantity  = 99
	maxCartItems = 100

	defaultMinimumValue = 500
	defaultBonusRateBps = 1000
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Store mirrors cart state to durable storage. Writes are best effort: the
// engine logs failures and keeps operating in memory.
type Store interface {
	Load(ctx context.Context, session contextx.SessionID) (*entity.CartState, error)
	Save(ctx context.Context, session contextx.SessionID, state *entity.CartState) error
	Clear(ctx context.Context, session contextx.SessionID) error
}

// Engine owns every in-progress cart. Mutations take the engine lock, so one
// user action is atomic; the durable mirror trails behind.
type Engine struct {
	mu    sync.Mutex
	store Store
	carts map[contextx.SessionID]*entity.CartState

	minimumValue int64
	bonusRateBps int64
	multipliers  value.Multipliers
}

func NewEngine(store Store) *Engine {
	return &Engine{
		store:        store,
		carts:        make(map[contextx.SessionID]*entity.CartState),
		minimumValue: defaultMinimumValue,
		bonusRateBps: defaultBonusRateBps,
		multipliers:  value.DefaultMultipliers(),
	}
}

func (e *Engine) WithMinimumValue(v int64) *Engine {
	e.minimumValue = v
	return e
}

func (e *Engine) WithBonusRateBps(bps int64) *Engine {
	e.bonusRateBps = bps
	return e
}

// ApplySettings overrides the quoting defaults with backend-declared values.
// Called once after a successful startup settings fetch.
func (e *Engine) ApplySettings(settings entity.TradeSettings) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if settings.MinimumValue > 0 {
		e.minimumValue = settings.MinimumValue
	}
	if settings.BonusRateBps > 0 {
		e.bonusRateBps = settings.BonusRateBps
	}
	if len(settings.Multipliers) > 0 {
		e.multipliers = settings.Multipliers
	}
}

func (e *Engine) MinimumValue() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.minimumValue
}

// Cart returns the session's cart, restoring it from storage on first touch.
func (e *Engine) Cart(ctx context.Context, session contextx.SessionID) *entity.CartState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cartLocked(ctx, session)
}

func (e *Engine) cartLocked(ctx context.Context, session contextx.SessionID) *entity.CartState {
	if state, ok := e.carts[session]; ok {
		return state
	}

	state := e.restore(ctx, session)
	e.carts[session] = state

	return state
}

// restore loads the persisted cart, wiping it on schema-version mismatch and
// silently dropping unusable items. Storage failure yields an empty cart; it
// never blocks the session.
func (e *Engine) restore(ctx context.Context, session contextx.SessionID) *entity.CartState {
	empty := &entity.CartState{SchemaVersion: SchemaVersion}

	stored, err := e.store.Load(ctx, session)
	if err != nil {
		if !domain.HasCode(err, errcodes.NotFound) {
			logger(ctx).Warn("cart restore failed, starting empty", "session", session, "error", err)
		}
		return empty
	}

	if stored.SchemaVersion != SchemaVersion {
		logger(ctx).Info("stored cart schema outdated, resetting",
			"stored_version", stored.SchemaVersion,
			"current_version", SchemaVersion,
		)
		e.persist(ctx, session, empty)

		return empty
	}

	sanitized := sanitizeItems(stored.Items)
	stored.Items = sanitized.items

	if sanitized.dropped > 0 {
		logger(ctx).Warn("dropped unusable cart items on restore", "count", sanitized.dropped)
		e.persist(ctx, session, stored)
	}

	return stored
}

type sanitizeResult struct {
	items   []entity.CartItem
	dropped int
}

func sanitizeItems(items []entity.CartItem) sanitizeResult {
	kept := make([]entity.CartItem, 0, len(items))

	for _, item := range items {
		if item.CardID == "" || item.Name == "" || !item.Condition.Valid() {
			continue
		}
		if item.Quantity < minQuantity {
			item.Quantity = minQuantity
		}
		kept = append(kept, item)
	}

	return sanitizeResult{items: kept, dropped: len(items) - len(kept)}
}

// AddItem merges into an existing (card, condition) line or appends a new one
// with the price resolved and frozen now.
func (e *Engine) AddItem(
	ctx context.Context,
	session contextx.SessionID,
	card entity.CatalogCard,
	condition value.Condition,
	quantity int,
) (*entity.CartState, error) {
	if !condition.Valid() {
		return nil, domain.NewError(errcodes.InvalidCondition, "unknown condition code: "+condition.String())
	}
	if quantity < minQuantity || quantity > maxQuantity {
		return nil, domain.NewError(errcodes.InvalidQuantity, "quantity must be between 1 and 99")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	state := e.cartLocked(ctx, session)

	if i := state.IndexOf(card.ID, condition); i >= 0 {
		state.Items[i].Quantity += quantity
		e.persist(ctx, session, state)

		return state, nil
	}

	price, source, err := e.resolvePrice(card, condition)
	if err != nil {
		return nil, err
	}

	setLabel := card.SetName
	if setLabel == "" {
		setLabel = card.DisplayNumber()
	}

	state.Items = append(state.Items, entity.CartItem{
		CardID:       card.ID,
		Name:         card.Name,
		SetLabel:     setLabel,
		Variant:      card.Variant,
		ImageURL:     card.ImageURL,
		Condition:    condition,
		Quantity:     quantity,
		PricePerItem: price,
		PriceSource:  source,
	})

	e.persist(ctx, session, state)

	return state, nil
}

// RemoveItem deletes one line. Removal is only ever by index; quantity
// changes never remove.
func (e *Engine) RemoveItem(ctx context.Context, session contextx.SessionID, index int) (*entity.CartState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := e.cartLocked(ctx, session)

	if index < 0 || index >= len(state.Items) {
		return nil, domain.NewError(errcodes.InvalidCartIndex, "no cart item at that position")
	}

	state.Items = append(state.Items[:index], state.Items[index+1:]...)
	e.persist(ctx, session, state)

	return state, nil
}

// ChangeQuantity applies a delta and clamps the result to [1, 99].
func (e *Engine) ChangeQuantity(ctx context.Context, session contextx.SessionID, index, delta int) (*entity.CartState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := e.cartLocked(ctx, session)

	if index < 0 || index >= len(state.Items) {
		return nil, domain.NewError(errcodes.InvalidCartIndex, "no cart item at that position")
	}

	quantity := state.Items[index].Quantity + delta
	if quantity < minQuantity {
		quantity = minQuantity
	}
	if quantity > maxQuantity {
		quantity = maxQuantity
	}

	state.Items[index].Quantity = quantity
	e.persist(ctx, session, state)

	return state, nil
}

// Clear empties the cart and its durable mirror. Used on successful
// submission and by the explicit clear action.
func (e *Engine) Clear(ctx context.Context, session contextx.SessionID) *entity.CartState {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := &entity.CartState{SchemaVersion: SchemaVersion}
	e.carts[session] = state

	if err := e.store.Clear(ctx, session); err != nil {
		logger(ctx).Warn("cart storage clear failed", "session", session, "error", err)
	}

	return state
}

// Totals are recomputed from the items on every call and never stored.
func (e *Engine) Totals(state *entity.CartState) entity.QuoteTotals {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.totalsLocked(state)
}

func (e *Engine) totalsLocked(state *entity.CartState) entity.QuoteTotals {
	var totals entity.QuoteTotals

	for _, item := range state.Items {
		totals.ItemCount += item.Quantity
		totals.Subtotal += int64(item.Quantity) * item.PricePerItem
	}

	// Floor via integer division; bonus rate is basis points.
	totals.StoreCreditTotal = totals.Subtotal * (10000 + e.bonusRateBps) / 10000
	totals.BankTotal = totals.Subtotal

	return totals
}

// Eligibility applies the submission rules. Shortfall is exposed only when
// the minimum value is the sole blocker.
func (e *Engine) Eligibility(state *entity.CartState) entity.Eligibility {
	e.mu.Lock()
	defer e.mu.Unlock()

	totals := e.totalsLocked(state)

	overQuantity := false
	for _, item := range state.Items {
		if item.Quantity > maxQuantity {
			overQuantity = true
			break
		}
	}

	overLimit := totals.ItemCount > maxCartItems
	belowMinimum := totals.Subtotal < e.minimumValue

	result := entity.Eligibility{
		Eligible: !belowMinimum && !overLimit && !overQuantity,
	}

	if belowMinimum && !overLimit && !overQuantity {
		result.Shortfall = e.minimumValue - totals.Subtotal
	}

	return result
}

// persist mirrors the state to storage, fire and forget: a failure is logged
// and the in-memory mutation stands.
func (e *Engine) persist(ctx context.Context, session contextx.SessionID, state *entity.CartState) {
	state.SchemaVersion = SchemaVersion

	if err := e.store.Save(ctx, session, state); err != nil {
		logger(ctx).Warn("cart persist failed", "session", session, "error", err)
	}
}
