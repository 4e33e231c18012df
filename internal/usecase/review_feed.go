package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"storefront-client/internal/domain"
	"storefront-client/internal/view"
)

var errNotLoaded = errors.New("first page not loaded")

// ReviewFeed is the paginated review panel for one product: fetch-and-
// append via the server's next cursor, insert of a newly confirmed review
// at the head, edit-in-place, and delete with decrement of the two
// separately displayed counters (section header and main tab).
//
// Every visible change is gated on a confirmed server response.
type ReviewFeed struct {
	gateway   domain.ReviewGateway
	view      *view.View
	productID string

	mu           sync.Mutex
	reviews      []domain.Review
	next         string
	loaded       bool
	sectionCount int
	mainCount    int
}

func NewReviewFeed(gateway domain.ReviewGateway, v *view.View, productID string) *ReviewFeed {
	return &ReviewFeed{
		gateway:   gateway,
		view:      v,
		productID: productID,
	}
}

// Load fetches the first page, replacing any loaded state and seeding both
// counters from the server's total count.
func (f *ReviewFeed) Load(ctx context.Context) error {
	page, err := f.gateway.ListReviews(ctx, f.productID, "")
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.reviews = append([]domain.Review(nil), page.Results...)
	f.next = page.Next
	f.loaded = true
	f.sectionCount = page.Count
	f.mainCount = page.Count
	f.mu.Unlock()

	f.renderCounters()
	return nil
}

// LoadMore appends the next page. Returns false when there is no further
// page to fetch.
func (f *ReviewFeed) LoadMore(ctx context.Context) (bool, error) {
	f.mu.Lock()
	if !f.loaded {
		f.mu.Unlock()
		return false, fmt.Errorf("review feed: %w", errNotLoaded)
	}
	cursor := f.next
	f.mu.Unlock()

	if cursor == "" {
		return false, nil
	}

	page, err := f.gateway.ListReviews(ctx, f.productID, cursor)
	if err != nil {
		return false, err
	}

	f.mu.Lock()
	f.reviews = append(f.reviews, page.Results...)
	f.next = page.Next
	f.mu.Unlock()
	return true, nil
}

// Reviews returns a snapshot of the loaded entries, newest first.
func (f *ReviewFeed) Reviews() []domain.Review {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Review(nil), f.reviews...)
}

// Counters returns the two displayed counts (section header, main tab).
func (f *ReviewFeed) Counters() (section, main int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sectionCount, f.mainCount
}

// Create submits a new review. Only after the server confirms is the
// rendered entry inserted at the head and are both counters incremented.
func (f *ReviewFeed) Create(ctx context.Context, text string) (*domain.Review, error) {
	created, err := f.gateway.CreateReview(ctx, domain.NewReview{ProductID: f.productID, Text: text})
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.reviews = append([]domain.Review{*created}, f.reviews...)
	f.sectionCount++
	f.mainCount++
	f.mu.Unlock()

	f.renderCounters()
	return created, nil
}

// Edit swaps a loaded review's text in place after a confirmed update.
func (f *ReviewFeed) Edit(ctx context.Context, pk int64, text string) error {
	f.mu.Lock()
	idx := f.indexLocked(pk)
	f.mu.Unlock()
	if idx < 0 {
		return fmt.Errorf("edit review %d: %w", pk, domain.ErrReviewNotFound)
	}

	updated, err := f.gateway.UpdateReview(ctx, pk, text)
	if err != nil {
		return err
	}

	f.mu.Lock()
	if idx := f.indexLocked(pk); idx >= 0 {
		f.reviews[idx] = *updated
	}
	f.mu.Unlock()
	return nil
}

// Delete removes a review and decrements both counters, flooring at zero.
func (f *ReviewFeed) Delete(ctx context.Context, pk int64) error {
	f.mu.Lock()
	idx := f.indexLocked(pk)
	f.mu.Unlock()
	if idx < 0 {
		return fmt.Errorf("delete review %d: %w", pk, domain.ErrReviewNotFound)
	}

	if err := f.gateway.DeleteReview(ctx, pk); err != nil {
		return err
	}

	f.mu.Lock()
	if idx := f.indexLocked(pk); idx >= 0 {
		f.reviews = append(f.reviews[:idx], f.reviews[idx+1:]...)
	}
	if f.sectionCount > 0 {
		f.sectionCount--
	}
	if f.mainCount > 0 {
		f.mainCount--
	}
	f.mu.Unlock()

	f.renderCounters()
	return nil
}

func (f *ReviewFeed) indexLocked(pk int64) int {
	for i, r := range f.reviews {
		if r.PK == pk {
			return i
		}
	}
	return -1
}

func (f *ReviewFeed) renderCounters() {
	f.mu.Lock()
	section, main := f.sectionCount, f.mainCount
	f.mu.Unlock()

	f.view.Set(view.SlotReviewSection, fmt.Sprintf("Reviews: %d", section))
	f.view.Set(view.SlotReviewMain, strconv.Itoa(main))
}
