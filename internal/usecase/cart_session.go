package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront-client/config"
	"storefront-client/internal/domain"
	"storefront-client/internal/view"
	"storefront-client/pkg/cache"
	"storefront-client/pkg/logger"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const summaryCacheKey = "cart:summary"

// CartSession keeps the local cart view reconciled against the server-held
// cart. All mutating calls funnel through one worker goroutine in
// submission order; each completes (success or reported failure) before the
// next is sent, so rapid overlapping actions cannot race each other.
//
// The view refresh is gated on confirmed success: a failed mutation goes to
// the banner and the displayed state stays untouched, it is never
// optimistically advanced past server truth.
type CartSession struct {
	gateway domain.CartGateway
	view    *view.View
	banner  *view.Banner
	store   cache.CacheService

	limiter     *rate.Limiter
	group       singleflight.Group
	maxQuantity int
	summaryTTL  time.Duration

	tasks     chan task
	done      chan struct{}
	closeOnce sync.Once
}

type task struct {
	ctx    context.Context
	op     string
	run    func(ctx context.Context) error
	result chan error
}

// NewCartSession builds a session and starts its worker. Callers must
// Close it to stop the worker.
func NewCartSession(gateway domain.CartGateway, v *view.View, banner *view.Banner, store cache.CacheService, cfg *config.Config) *CartSession {
	s := &CartSession{
		gateway:     gateway,
		view:        v,
		banner:      banner,
		store:       store,
		limiter:     rate.NewLimiter(rate.Limit(cfg.MutationRate), cfg.MutationBurst),
		maxQuantity: cfg.MaxCartQuantity,
		summaryTTL:  cfg.SummaryTTL,
		tasks:       make(chan task, 16),
		done:        make(chan struct{}),
	}
	go s.worker()
	return s
}

// Close stops the worker. Pending submissions fail with ErrSessionClosed.
func (s *CartSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// --- Mutating Operations (serialized) ---

// Add puts a product into the cart and reconciles the view.
func (s *CartSession) Add(ctx context.Context, ref domain.ProductRef) error {
	if ref.ProductID == "" {
		return fmt.Errorf("add: %w", domain.ErrMissingProduct)
	}
	return s.submit(ctx, "add", func(ctx context.Context) error {
		return s.gateway.AddLine(ctx, ref)
	})
}

// Remove deletes a product's line. The card is dropped from the view only
// after the server confirmed the delete, and exactly once; a second remove
// of an absent line reports the server's rejection instead of crashing.
func (s *CartSession) Remove(ctx context.Context, productID string) error {
	if productID == "" {
		return fmt.Errorf("remove: %w", domain.ErrMissingProduct)
	}
	return s.submit(ctx, "remove", func(ctx context.Context) error {
		if err := s.gateway.RemoveLine(ctx, productID); err != nil {
			return err
		}
		s.view.RemoveCard(productID)
		return nil
	})
}

// SetQuantities applies quantity/seller changes for a set of lines.
// Quantity 0 is the remove policy: such lines are deleted explicitly, so
// the server only ever sees lines with quantity >= 1.
func (s *CartSession) SetQuantities(ctx context.Context, updates []domain.LineUpdate) error {
	var removals []string
	var changes []domain.LineUpdate
	for _, u := range updates {
		if u.Quantity < 0 || u.Quantity > s.maxQuantity {
			return fmt.Errorf("set quantity %d for product %s: %w", u.Quantity, u.ProductID, domain.ErrQuantityRange)
		}
		if u.Quantity == 0 {
			removals = append(removals, u.ProductID)
			continue
		}
		changes = append(changes, u)
	}

	return s.submit(ctx, "update", func(ctx context.Context) error {
		for _, productID := range removals {
			if err := s.gateway.RemoveLine(ctx, productID); err != nil {
				return err
			}
			s.view.RemoveCard(productID)
		}
		if len(changes) == 0 {
			return nil
		}
		return s.gateway.UpdateLines(ctx, changes)
	})
}

// --- Reads ---

// Refresh returns the current cart and mirrors it into the view. Repeat
// calls inside the summary TTL are served from the cache; concurrent
// fetches collapse into a single request.
func (s *CartSession) Refresh(ctx context.Context) (*domain.Cart, error) {
	if v, ok := s.store.Get(summaryCacheKey); ok {
		if cart, ok := v.(*domain.Cart); ok {
			s.view.ApplyCart(cart)
			return cart, nil
		}
	}

	cart, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.view.ApplyCart(cart)
	return cart, nil
}

func (s *CartSession) fetch(ctx context.Context) (*domain.Cart, error) {
	v, err, _ := s.group.Do(summaryCacheKey, func() (interface{}, error) {
		cart, err := s.gateway.FetchCart(ctx)
		if err != nil {
			return nil, err
		}
		s.store.Set(summaryCacheKey, cart, s.summaryTTL)
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// --- Worker ---

func (s *CartSession) submit(ctx context.Context, op string, run func(ctx context.Context) error) error {
	t := task{ctx: ctx, op: op, run: run, result: make(chan error, 1)}

	select {
	case s.tasks <- t:
	case <-s.done:
		return domain.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-t.result:
		return err
	case <-s.done:
		return domain.ErrSessionClosed
	}
}

func (s *CartSession) worker() {
	for {
		select {
		case <-s.done:
			return
		case t := <-s.tasks:
			t.result <- s.handle(t)
		}
	}
}

func (s *CartSession) handle(t task) error {
	// Rapid-click throttle. A cancelled submitter surfaces here.
	if err := s.limiter.Wait(t.ctx); err != nil {
		return err
	}

	if err := t.run(t.ctx); err != nil {
		logger.Error().Str("op", t.op).Err(err).Msg("Cart mutation failed")
		s.showFailure(t.op, err)
		return err
	}

	return s.reconcile(t.ctx)
}

// reconcile refetches the authoritative summary after a confirmed mutation
// and mirrors it into the view.
func (s *CartSession) reconcile(ctx context.Context) error {
	s.store.Delete(summaryCacheKey)

	cart, err := s.fetch(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Cart reconciliation fetch failed")
		s.showFailure("refresh", err)
		return err
	}

	s.view.ApplyCart(cart)
	return nil
}

func (s *CartSession) showFailure(op string, err error) {
	if s.banner == nil {
		return
	}
	s.banner.Show("Cart "+op+" failed", err.Error(), view.SeverityFailure)
}
