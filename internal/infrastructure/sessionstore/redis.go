package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brevistay/checkout-service/config"
	"github.com/brevistay/checkout-service/internal/domain"
	"github.com/brevistay/checkout-service/pkg/errs"
	"github.com/redis/go-redis/v9"
)

// Store holds in-flight checkout sessions. Entries expire on their own once
// the gateway wait window closes; an absent key means the guest abandoned
// the checkout or never had one.
type Store interface {
	Save(ctx context.Context, session domain.CheckoutSession, ttl time.Duration) error
	Update(ctx context.Context, session domain.CheckoutSession) error
	Get(ctx context.Context, id string) (domain.CheckoutSession, error)
}

type RedisStore struct {
	client *redis.Client
}

func CreateRedisClient(config *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.RedisConfig.Address,
		Password: config.RedisConfig.Password,
	})
}

func CreateRedisStore(client *redis.Client) Store {
	return &RedisStore{client: client}
}

func sessionKey(id string) string {
	return fmt.Sprintf("checkout:session:%s", id)
}

func (s *RedisStore) Save(ctx context.Context, session domain.CheckoutSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshalling checkout session: %w", err)
	}

	return s.client.Set(ctx, sessionKey(session.ID), payload, ttl).Err()
}

// Update rewrites a session without touching its remaining TTL.
func (s *RedisStore) Update(ctx context.Context, session domain.CheckoutSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshalling checkout session: %w", err)
	}

	return s.client.Set(ctx, sessionKey(session.ID), payload, redis.KeepTTL).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (domain.CheckoutSession, error) {
	payload, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.CheckoutSession{}, errs.ErrSessionNotFound
		}
		return domain.CheckoutSession{}, err
	}

	var session domain.CheckoutSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("unmarshalling checkout session: %w", err)
	}

	return session, nil
}
