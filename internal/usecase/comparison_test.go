package usecase

import (
	"context"
	"errors"
	"testing"

	"storefront-client/internal/domain"
	"storefront-client/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComparisonGateway struct {
	status *domain.ComparisonStatus
	err    error
}

func (g *fakeComparisonGateway) AddProduct(ctx context.Context, productID string) (*domain.ComparisonStatus, error) {
	return g.status, g.err
}

func (g *fakeComparisonGateway) RemoveProduct(ctx context.Context, productID string) (*domain.ComparisonStatus, error) {
	return g.status, g.err
}

func boolPtr(b bool) *bool { return &b }

func TestComparisonBannerSeverity(t *testing.T) {
	tests := []struct {
		name     string
		status   *bool
		expected view.Severity
	}{
		{"applied is green", boolPtr(true), view.SeveritySuccess},
		{"rejected is red", boolPtr(false), view.SeverityFailure},
		{"noop is yellow", nil, view.SeverityNotice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeComparisonGateway{status: &domain.ComparisonStatus{
				Status: tt.status,
				Title:  "Comparison",
				Text:   "outcome",
			}}
			banner := view.NewBanner(nil, 0)
			comp := NewComparison(gw, banner)

			require.NoError(t, comp.Add(context.Background(), "41"))

			msg, ok := banner.Current()
			require.True(t, ok)
			assert.Equal(t, tt.expected, msg.Severity)
			assert.Equal(t, "Comparison", msg.Title)
			assert.Equal(t, "outcome", msg.Text)
		})
	}
}

func TestComparisonTransportFailureShowsRedBanner(t *testing.T) {
	gw := &fakeComparisonGateway{err: errors.New("connection refused")}
	banner := view.NewBanner(nil, 0)
	comp := NewComparison(gw, banner)

	err := comp.Remove(context.Background(), "41")
	require.Error(t, err)

	msg, ok := banner.Current()
	require.True(t, ok)
	assert.Equal(t, view.SeverityFailure, msg.Severity)
	assert.Contains(t, msg.Text, "connection refused")
}
