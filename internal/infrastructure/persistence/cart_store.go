package persistence

import (
	"context"
	"errors"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"tradein/internal/domain"
	"tradein/internal/domain/entity"
	"tradein/pkg/contextx"
	"tradein/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// CartStore keeps one serialized cart payload plus one schema-version marker
// per session, under a namespaced key pair.
type CartStore struct {
	rdb    *redis.Client
	prefix string
}

func NewCartStore(rdb *redis.Client, prefix string) *CartStore {
	return &CartStore{rdb: rdb, prefix: prefix}
}

func (s *CartStore) payloadKey(session contextx.SessionID) string {
	return s.prefix + ":" + session.String()
}

func (s *CartStore) schemaKey(session contextx.SessionID) string {
	return s.prefix + ":" + session.String() + ":schema"
}

func (s *CartStore) Load(ctx context.Context, session contextx.SessionID) (*entity.CartState, error) {
	values, err := s.rdb.MGet(ctx, s.payloadKey(session), s.schemaKey(session)).Result()
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "cart storage read failed")
	}

	payload, ok := values[0].(string)
	if !ok {
		return nil, domain.NewError(errcodes.NotFound, "no stored cart for session")
	}

	version := 0
	if raw, ok := values[1].(string); ok {
		if v, err := strconv.Atoi(raw); err == nil {
			version = v
		}
	}

	var schema cartStateSchema
	if err := json.Unmarshal([]byte(payload), &schema); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "stored cart payload malformed")
	}

	return schema.toDomain(version), nil
}

func (s *CartStore) Save(ctx context.Context, session contextx.SessionID, state *entity.CartState) error {
	payload, err := json.Marshal(toSchema(state))
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "cart payload marshal failed")
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.payloadKey(session), payload, 0)
		pipe.Set(ctx, s.schemaKey(session), strconv.Itoa(state.SchemaVersion), 0)
		return nil
	})
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "cart storage write failed")
	}

	return nil
}

func (s *CartStore) Clear(ctx context.Context, session contextx.SessionID) error {
	if err := s.rdb.Del(ctx, s.payloadKey(session), s.schemaKey(session)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return domain.WrapError(err, errcodes.InternalServerError, "cart storage delete failed")
	}

	return nil
}
