package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kendall-kelly/coffee-shop-api/logging"
	"github.com/kendall-kelly/coffee-shop-api/models"
)

// OrderSummary is what the barista and owner screens show for a session
type OrderSummary struct {
	Latest *models.Order `json:"latest"`
	Count  int           `json:"count"`
}

// OrderService turns a customer's flavor selection into an order
type OrderService struct {
	rules      *RuleTable
	store      OrderStore
	now        func() time.Time
	sessionTTL time.Duration
}

// NewOrderService creates an order service using the wall clock
func NewOrderService(rules *RuleTable, store OrderStore) *OrderService {
	return &OrderService{
		rules: rules,
		store: store,
		now:   time.Now,
	}
}

// WithClock replaces the clock used to stamp new orders
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// WithSessionTTL sets how long a session may stay idle before its log is
// expired. Zero disables expiry.
func (s *OrderService) WithSessionTTL(ttl time.Duration) *OrderService {
	s.sessionTTL = ttl
	return s
}

// Rules returns the rule table used to resolve selections
func (s *OrderService) Rules() *RuleTable {
	return s.rules
}

// Submit resolves the selection once and, only when a rule matches, records a
// new order at the front of the session's log. A selection without a rule
// returns an error wrapping ErrRuleNotFound and leaves the log untouched.
func (s *OrderService) Submit(ctx context.Context, sessionID string, main models.FlavorMain, sub models.FlavorSub) (models.Order, error) {
	rec, err := s.rules.Resolve(main, sub)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			logging.Warn().
				Str("session_id", sessionID).
				Str("flavor_main", string(main)).
				Str("flavor_sub", string(sub)).
				Msg("No recipe for selected flavor profile")
		}
		return models.Order{}, err
	}

	createdAt := s.now()
	order := models.Order{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		FlavorMain:  main,
		FlavorSub:   sub,
		Bean:        rec.Bean,
		Recipe:      rec.Recipe,
		BeanLabel:   rec.BeanLabel(),
		RecipeLabel: rec.RecipeLabel(),
		Time:        createdAt.Format(models.OrderTimeLayout),
		CreatedAt:   createdAt,
	}

	if err := s.store.Append(ctx, sessionID, order); err != nil {
		return models.Order{}, fmt.Errorf("failed to record order: %w", err)
	}

	logging.Info().
		Str("session_id", sessionID).
		Str("order_id", order.ID).
		Str("bean", string(order.Bean)).
		Str("recipe", string(order.Recipe)).
		Msg("Order sent to barista")

	return order, nil
}

// Summary returns the latest order and the order count of the session
func (s *OrderService) Summary(ctx context.Context, sessionID string) (OrderSummary, error) {
	if err := s.store.Touch(ctx, sessionID, s.now()); err != nil {
		return OrderSummary{}, fmt.Errorf("failed to refresh session: %w", err)
	}

	latest, found, err := s.store.Latest(ctx, sessionID)
	if err != nil {
		return OrderSummary{}, fmt.Errorf("failed to load latest order: %w", err)
	}

	count, err := s.store.Count(ctx, sessionID)
	if err != nil {
		return OrderSummary{}, fmt.Errorf("failed to count orders: %w", err)
	}

	summary := OrderSummary{Count: count}
	if found {
		summary.Latest = &latest
	}
	return summary, nil
}

// History returns every order of the session, most recent first
func (s *OrderService) History(ctx context.Context, sessionID string) ([]models.Order, error) {
	if err := s.store.Touch(ctx, sessionID, s.now()); err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}

	orders, err := s.store.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// EndSession discards the session's order log
func (s *OrderService) EndSession(ctx context.Context, sessionID string) error {
	if err := s.store.Discard(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	logging.Info().Str("session_id", sessionID).Msg("Session ended")
	return nil
}

// ExpireSessions discards the logs of sessions idle for longer than the
// session TTL, the same lifetime the session cookie has
func (s *OrderService) ExpireSessions(ctx context.Context) (int, error) {
	if s.sessionTTL <= 0 {
		return 0, nil
	}

	expired, err := s.store.Expire(ctx, s.now().Add(-s.sessionTTL))
	if err != nil {
		return 0, fmt.Errorf("failed to expire sessions: %w", err)
	}
	if expired > 0 {
		logging.Info().Int("sessions", expired).Msg("Expired idle sessions")
	}
	return expired, nil
}

// RunSessionSweeper calls ExpireSessions every interval until ctx is done
func (s *OrderService) RunSessionSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.ExpireSessions(ctx); err != nil {
				logging.Error().Err(err).Msg("Session sweep failed")
			}
		}
	}
}
