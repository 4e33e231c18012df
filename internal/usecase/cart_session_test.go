package usecase

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"storefront-client/config"
	"storefront-client/internal/domain"
	infracache "storefront-client/internal/infrastructure/cache"
	"storefront-client/internal/view"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCartGateway is an in-memory stand-in for the server-held cart. It
// records the order operations arrive in, which is exactly the
// "server-received order" the serialization contract is about.
type fakeCartGateway struct {
	mu      sync.Mutex
	prices  map[string]decimal.Decimal
	sellers map[string]string
	lines   map[string]int
	ops     []string
	fetches int
	delay   time.Duration

	addErr    error
	updateErr error
}

func newFakeCartGateway() *fakeCartGateway {
	return &fakeCartGateway{
		prices:  make(map[string]decimal.Decimal),
		sellers: make(map[string]string),
		lines:   make(map[string]int),
	}
}

func (g *fakeCartGateway) seed(productID string, quantity int, price string, seller string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prices[productID] = decimal.RequireFromString(price)
	g.sellers[productID] = seller
	if quantity > 0 {
		g.lines[productID] = quantity
	}
}

func (g *fakeCartGateway) record(op string) {
	g.ops = append(g.ops, op)
	if g.delay > 0 {
		g.mu.Unlock()
		time.Sleep(g.delay)
		g.mu.Lock()
	}
}

func (g *fakeCartGateway) opsSeen() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.ops...)
}

func (g *fakeCartGateway) fetchCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetches
}

func (g *fakeCartGateway) FetchCart(ctx context.Context) (*domain.Cart, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("fetch")
	g.fetches++

	cart := &domain.Cart{Lines: make(map[string]domain.CartLine)}
	for id, qty := range g.lines {
		price := g.prices[id]
		cost := price.Mul(decimal.NewFromInt(int64(qty)))
		cart.Lines[id] = domain.CartLine{
			ProductID:  id,
			SellerName: g.sellers[id],
			Quantity:   qty,
			UnitPrice:  price,
			LineCost:   cost,
		}
		cart.Summary.TotalQuantity += qty
		cart.Summary.TotalCost = cart.Summary.TotalCost.Add(cost)
	}
	return cart, nil
}

func (g *fakeCartGateway) AddLine(ctx context.Context, ref domain.ProductRef) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("add")
	if g.addErr != nil {
		return g.addErr
	}
	g.lines[ref.ProductID]++
	return nil
}

func (g *fakeCartGateway) UpdateLines(ctx context.Context, updates []domain.LineUpdate) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("update")
	if g.updateErr != nil {
		return g.updateErr
	}
	for _, u := range updates {
		g.lines[u.ProductID] = u.Quantity
	}
	return nil
}

func (g *fakeCartGateway) RemoveLine(ctx context.Context, productID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("remove")
	if _, ok := g.lines[productID]; !ok {
		return &domain.APIError{Op: "cart.remove", Status: http.StatusNotFound}
	}
	delete(g.lines, productID)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		MutationRate:    1000,
		MutationBurst:   100,
		SummaryTTL:      time.Minute,
		MaxCartQuantity: 1000,
	}
}

func newSessionForTest(t *testing.T, gw domain.CartGateway, v *view.View, banner *view.Banner) *CartSession {
	t.Helper()
	store := infracache.NewMemoryCache(time.Minute, 0)
	s := NewCartSession(gw, v, banner, store, testConfig())
	t.Cleanup(s.Close)
	return s
}

func TestAddReflectsInNextFetch(t *testing.T) {
	gw := newFakeCartGateway()
	gw.seed("41", 0, "10.00", "Main Store")
	s := newSessionForTest(t, gw, view.New(), nil)

	require.NoError(t, s.Add(context.Background(), domain.ProductRef{ProductID: "41"}))

	cart, err := s.Refresh(context.Background())
	require.NoError(t, err)
	line, ok := cart.Line("41")
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)

	// A second add grows the same line, never duplicates it.
	require.NoError(t, s.Add(context.Background(), domain.ProductRef{ProductID: "41"}))
	cart, err = s.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	line, _ = cart.Line("41")
	assert.Equal(t, 2, line.Quantity)
}

func TestRemoveIsReportedNotCrashedWhenAbsent(t *testing.T) {
	gw := newFakeCartGateway()
	gw.seed("41", 1, "10.00", "Main Store")
	banner := view.NewBanner(nil, 0)
	s := newSessionForTest(t, gw, view.New(), banner)

	require.NoError(t, s.Remove(context.Background(), "41"))

	cart, err := s.Refresh(context.Background())
	require.NoError(t, err)
	_, ok := cart.Line("41")
	assert.False(t, ok)

	// Second removal of the already-absent line: reported failure.
	err = s.Remove(context.Background(), "41")
	require.Error(t, err)
	apiErr, ok := domain.IsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.NotFound())

	msg, shown := banner.Current()
	require.True(t, shown)
	assert.Equal(t, view.SeverityFailure, msg.Severity)
}

func TestQuantityZeroRemovesLine(t *testing.T) {
	gw := newFakeCartGateway()
	gw.seed("41", 2, "10.00", "Main Store")
	gw.seed("52", 1, "3.50", "Outlet")
	s := newSessionForTest(t, gw, view.New(), nil)

	err := s.SetQuantities(context.Background(), []domain.LineUpdate{
		{ProductID: "41", Quantity: 0},
		{ProductID: "52", Quantity: 4},
	})
	require.NoError(t, err)

	cart, err := s.Refresh(context.Background())
	require.NoError(t, err)
	_, ok := cart.Line("41")
	assert.False(t, ok, "quantity zero deletes the line")
	line, ok := cart.Line("52")
	require.True(t, ok)
	assert.Equal(t, 4, line.Quantity)

	ops := gw.opsSeen()
	assert.Contains(t, ops, "remove")
	assert.Contains(t, ops, "update")
}

func TestQuantityOutOfRangeRejectedLocally(t *testing.T) {
	gw := newFakeCartGateway()
	s := newSessionForTest(t, gw, view.New(), nil)

	err := s.SetQuantities(context.Background(), []domain.LineUpdate{{ProductID: "41", Quantity: -1}})
	require.ErrorIs(t, err, domain.ErrQuantityRange)

	err = s.SetQuantities(context.Background(), []domain.LineUpdate{{ProductID: "41", Quantity: 1001}})
	require.ErrorIs(t, err, domain.ErrQuantityRange)

	assert.Empty(t, gw.opsSeen(), "invalid quantities never reach the server")
}

func TestMutationsSerializeInSubmissionOrder(t *testing.T) {
	gw := newFakeCartGateway()
	gw.seed("41", 0, "10.00", "Main Store")
	gw.delay = 20 * time.Millisecond
	s := newSessionForTest(t, gw, view.New(), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.Add(context.Background(), domain.ProductRef{ProductID: "41"}))
	}()

	// Back-to-back: the remove is submitted while the add is still in
	// flight and must wait for it to complete.
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.Remove(context.Background(), "41"))
	wg.Wait()

	assert.Equal(t, []string{"add", "fetch", "remove", "fetch"}, gw.opsSeen())

	cart, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestFailedMutationSkipsRefresh(t *testing.T) {
	gw := newFakeCartGateway()
	gw.seed("41", 2, "10.00", "Main Store")
	gw.updateErr = &domain.APIError{Op: "cart.update", Status: http.StatusBadRequest}
	banner := view.NewBanner(nil, 0)
	s := newSessionForTest(t, gw, view.New(), banner)

	err := s.SetQuantities(context.Background(), []domain.LineUpdate{{ProductID: "41", Quantity: 5}})
	require.Error(t, err)

	assert.Zero(t, gw.fetchCount(), "no reconciliation fetch after a failed mutation")

	msg, shown := banner.Current()
	require.True(t, shown)
	assert.Equal(t, view.SeverityFailure, msg.Severity)
}

func TestUpdateScenarioBadgesReflectServerTotals(t *testing.T) {
	gw := newFakeCartGateway()
	gw.seed("A", 2, "10.00", "Main Store")

	v := view.New()
	var mu sync.Mutex
	var amount, cost string
	v.BindFunc(view.SlotCartAmount, func(text string) {
		mu.Lock()
		amount = text
		mu.Unlock()
	})
	v.BindFunc(view.SlotCartCost, func(text string) {
		mu.Lock()
		cost = text
		mu.Unlock()
	})

	s := newSessionForTest(t, gw, v, nil)

	err := s.SetQuantities(context.Background(), []domain.LineUpdate{{ProductID: "A", Quantity: 5}})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "5", amount)
	assert.Equal(t, "50.00", cost)
}

func TestRefreshUsesCacheAndSingleflight(t *testing.T) {
	gw := newFakeCartGateway()
	gw.seed("41", 1, "10.00", "Main Store")
	s := newSessionForTest(t, gw, view.New(), nil)

	for i := 0; i < 5; i++ {
		_, err := s.Refresh(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, gw.fetchCount(), "repeat refreshes inside the TTL hit the cache")

	// A mutation invalidates the cached summary.
	require.NoError(t, s.Add(context.Background(), domain.ProductRef{ProductID: "41"}))
	assert.Equal(t, 2, gw.fetchCount())
}

func TestClosedSessionRejectsMutations(t *testing.T) {
	gw := newFakeCartGateway()
	s := newSessionForTest(t, gw, view.New(), nil)
	s.Close()

	err := s.Add(context.Background(), domain.ProductRef{ProductID: "41"})
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestMissingProductRejectedLocally(t *testing.T) {
	gw := newFakeCartGateway()
	s := newSessionForTest(t, gw, view.New(), nil)

	assert.ErrorIs(t, s.Add(context.Background(), domain.ProductRef{}), domain.ErrMissingProduct)
	assert.ErrorIs(t, s.Remove(context.Background(), ""), domain.ErrMissingProduct)
	assert.Empty(t, gw.opsSeen())
}
