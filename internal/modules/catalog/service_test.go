package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

// fixedRand always draws the same offset, clamped to n.
type fixedRand int

func (r fixedRand) IntN(n int) int {
	if int(r) >= n {
		return n - 1
	}
	return int(r)
}

var testNow = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, rnd Rand) Service {
	t.Helper()
	seed, err := DefaultSeed()
	require.NoError(t, err)
	repo, err := NewMemoryRepository(seed)
	require.NoError(t, err)
	return NewService(repo, fixedClock(testNow), rnd, zerolog.Nop())
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestSearchProducts(t *testing.T) {
	svc := newTestService(t, fixedRand(0))
	ctx := context.Background()
	forty := dec("40")
	fifty := dec("50")
	skirtPrice := dec("35.99")

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty filter matches everything", Filter{}, []string{"sk1", "sk2", "sn1", "jk1", "jk2", "dr1"}},
		{"substring is case-insensitive", Filter{Query: "SKIRT"}, []string{"sk1", "sk2"}},
		{"price ceiling and size", Filter{Query: "skirt", MaxPrice: &forty, Size: "S"}, []string{"sk1"}},
		{"size is case-insensitive", Filter{Query: "skirt", Size: "s"}, []string{"sk1", "sk2"}},
		{"color filter", Filter{Color: "WHITE"}, []string{"sn1"}},
		{"ceiling below every jacket", Filter{MaxPrice: &fifty}, []string{"sk1", "sk2"}},
		{"ceiling is inclusive", Filter{Query: "skirt", MaxPrice: &skirtPrice}, []string{"sk1"}},
		{"no match", Filter{Query: "scarf"}, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.SearchProducts(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestSearchProducts_FloralSkirt(t *testing.T) {
	svc := newTestService(t, fixedRand(0))
	forty := dec("40")

	got, err := svc.SearchProducts(context.Background(), Filter{Query: "skirt", MaxPrice: &forty, Size: "S"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Floral A-Line Skirt", got[0].Name)
	assert.True(t, got[0].Price.Equal(dec("35.99")))
}

func TestMatchProducts(t *testing.T) {
	svc := newTestService(t, fixedRand(0))
	ctx := context.Background()
	forty := dec("40")

	got, err := svc.MatchProducts(ctx, "find a floral skirt under $40 in size s.", Filter{MaxPrice: &forty, Size: "s"})
	require.NoError(t, err)
	assert.Equal(t, []string{"sk1"}, ids(got))

	got, err = svc.MatchProducts(ctx, "white sneakers that can arrive by friday", Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"sn1"}, ids(got))

	got, err = svc.MatchProducts(ctx, "any skirts?", Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"sk1", "sk2"}, ids(got), "plural form matches")

	got, err = svc.MatchProducts(ctx, "two dresses please", Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"dr1"}, ids(got))

	got, err = svc.MatchProducts(ctx, "skirtless outfit", Filter{})
	require.NoError(t, err)
	assert.Empty(t, got, "noun must be a whole word")
}

func TestEstimateShipping(t *testing.T) {
	ctx := context.Background()
	p := Product{ID: "sn1"}

	t.Run("lead time follows the random draw", func(t *testing.T) {
		for draw, days := range map[int]int{0: 3, 2: 5, 4: 7} {
			svc := newTestService(t, fixedRand(draw))
			got, err := svc.EstimateShipping(ctx, p, nil)
			require.NoError(t, err)
			assert.Equal(t, testNow.AddDate(0, 0, days), got.EstimatedDelivery)
			assert.True(t, got.Cost.Equal(dec("8.99")))
			assert.Equal(t, "FastShip", got.Carrier)
			assert.True(t, got.Feasible, "no target is always feasible")
		}
	})

	t.Run("feasibility against target", func(t *testing.T) {
		target := testNow.AddDate(0, 0, 5)

		onTime, err := newTestService(t, fixedRand(2)).EstimateShipping(ctx, p, &target)
		require.NoError(t, err)
		assert.True(t, onTime.Feasible, "delivery on the target instant is feasible")

		late, err := newTestService(t, fixedRand(3)).EstimateShipping(ctx, p, &target)
		require.NoError(t, err)
		assert.False(t, late.Feasible)
	})

	t.Run("feasibility compares calendar days", func(t *testing.T) {
		earlier := testNow.AddDate(0, 0, 5).Add(-9 * time.Hour)

		got, err := newTestService(t, fixedRand(2)).EstimateShipping(ctx, p, &earlier)
		require.NoError(t, err)
		assert.True(t, got.Feasible, "delivery later on the target day is feasible")
	})

	t.Run("system clock with target taken first", func(t *testing.T) {
		seed, err := DefaultSeed()
		require.NoError(t, err)
		repo, err := NewMemoryRepository(seed)
		require.NoError(t, err)
		svc := NewService(repo, SystemClock, fixedRand(2), zerolog.Nop())

		for i := 0; i < 100; i++ {
			target := SystemClock.Now().AddDate(0, 0, 5)
			got, err := svc.EstimateShipping(ctx, p, &target)
			require.NoError(t, err)
			require.True(t, got.Feasible, "run %d", i)
		}
	})

	t.Run("random draws stay within range", func(t *testing.T) {
		svc := newTestService(t, NewRand(42))
		for i := 0; i < 200; i++ {
			got, err := svc.EstimateShipping(ctx, p, nil)
			require.NoError(t, err)
			days := int(got.EstimatedDelivery.Sub(testNow).Hours() / 24)
			assert.GreaterOrEqual(t, days, 3)
			assert.LessOrEqual(t, days, 7)
		}
	})
}

func TestApplyDiscount(t *testing.T) {
	svc := newTestService(t, fixedRand(0))
	ctx := context.Background()

	got, err := svc.ApplyDiscount(ctx, dec("100"), "SAVE10")
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("90")), "got %s", got)

	got, err = svc.ApplyDiscount(ctx, dec("35.99"), "save10")
	require.NoError(t, err)
	assert.Equal(t, "32.39", got.StringFixed(2))

	_, err = svc.ApplyDiscount(ctx, dec("100"), "NOPE")
	assert.ErrorIs(t, err, ErrInvalidPromoCode)
}

func TestComparePrices(t *testing.T) {
	svc := newTestService(t, fixedRand(0))

	got, err := svc.ComparePrices(context.Background(), "Casual Denim Jacket")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "SiteA", got[0].Store)
	assert.True(t, got[0].Price.Equal(dec("79.99")))
	assert.Equal(t, "SiteB", got[1].Store)
	assert.True(t, got[1].Price.Equal(dec("72.99")))
	assert.True(t, got[0].InStock)

	none, err := svc.ComparePrices(context.Background(), "ball gown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetReturnPolicy(t *testing.T) {
	svc := newTestService(t, fixedRand(0))
	ctx := context.Background()

	p, err := svc.GetReturnPolicy(ctx, "SiteB")
	require.NoError(t, err)
	assert.Equal(t, 14, p.DurationDays)
	assert.False(t, p.FreeReturns)
	assert.Equal(t, "Return shipping fee applies", p.Conditions)

	_, err = svc.GetReturnPolicy(ctx, "MegaMart")
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}

func TestListStores_SeedOrder(t *testing.T) {
	svc := newTestService(t, fixedRand(0))

	stores, err := svc.ListStores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"SiteA", "SiteB", "FashionCo", "StyleHub", "ShoeMart"}, stores)
}

func TestGetProduct(t *testing.T) {
	svc := newTestService(t, fixedRand(0))

	p, err := svc.GetProduct(context.Background(), "dr1")
	require.NoError(t, err)
	assert.Equal(t, "Evening Cocktail Dress", p.Name)

	_, err = svc.GetProduct(context.Background(), "zz9")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_CancelledContext(t *testing.T) {
	svc := newTestService(t, fixedRand(0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SearchProducts(ctx, Filter{})
	assert.ErrorIs(t, err, context.Canceled)
}
