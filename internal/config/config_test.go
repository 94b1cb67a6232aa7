package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepup-api/internal/constants"
)

func validPriceEnv() map[string]string {
	return map[string]string{
		"STRIPE_PRICE_SEAT_BASE":    "price_base123",
		"STRIPE_PRICE_SEAT_EXTRA":   "price_extra123",
		"STRIPE_PRICE_INSIGHTS":     "price_insights123",
		"STRIPE_PRICE_SITE_BUILDER": "price_sites123",
	}
}

func TestLoadPriceIDs(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(env map[string]string)
		wantErr     string
		wantSKUBase string
	}{
		{
			name:        "all valid",
			mutate:      func(env map[string]string) {},
			wantSKUBase: "price_base123",
		},
		{
			name:    "missing price id",
			mutate:  func(env map[string]string) { delete(env, "STRIPE_PRICE_INSIGHTS") },
			wantErr: "STRIPE_PRICE_INSIGHTS is not set",
		},
		{
			name: "product id instead of price id",
			mutate: func(env map[string]string) {
				env["STRIPE_PRICE_SEAT_EXTRA"] = "prod_abc123"
			},
			wantErr: "holds a product id",
		},
		{
			name: "malformed id",
			mutate: func(env map[string]string) {
				env["STRIPE_PRICE_SITE_BUILDER"] = "plan_legacy"
			},
			wantErr: "must be a Stripe price id",
		},
		{
			name: "whitespace trimmed",
			mutate: func(env map[string]string) {
				env["STRIPE_PRICE_SEAT_BASE"] = "  price_base123  "
			},
			wantSKUBase: "price_base123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := validPriceEnv()
			tt.mutate(env)

			got, err := loadPriceIDs(func(key string) string { return env[key] })
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSKUBase, got.SeatBase)
		})
	}
}

func TestOrderedIsStable(t *testing.T) {
	prices := StripePriceIDs{
		SeatBase:    "price_a",
		SeatExtra:   "price_b",
		Insights:    "price_c",
		SiteBuilder: "price_d",
	}

	ordered := prices.Ordered()
	require.Len(t, ordered, 4)
	assert.Equal(t, constants.SKUSeatBase, ordered[0].SKU)
	assert.Equal(t, constants.SKUSeatExtra, ordered[1].SKU)
	assert.Equal(t, constants.SKUInsights, ordered[2].SKU)
	assert.Equal(t, constants.SKUSiteBuilder, ordered[3].SKU)
}

func TestSKUForPriceID(t *testing.T) {
	prices := StripePriceIDs{
		SeatBase:    "price_a",
		SeatExtra:   "price_b",
		Insights:    "price_c",
		SiteBuilder: "price_d",
	}

	assert.Equal(t, constants.SKUSiteBuilder, prices.SKUForPriceID("price_d"))
	assert.Equal(t, "", prices.SKUForPriceID("price_unknown"))
}

func TestEnvInt64(t *testing.T) {
	t.Setenv("MIN_BILLED_SEATS", "")
	got, err := envInt64("MIN_BILLED_SEATS", DefaultMinBilledSeats)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)

	t.Setenv("MIN_BILLED_SEATS", "5")
	got, err = envInt64("MIN_BILLED_SEATS", DefaultMinBilledSeats)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got)

	t.Setenv("MIN_BILLED_SEATS", "-1")
	_, err = envInt64("MIN_BILLED_SEATS", DefaultMinBilledSeats)
	assert.Error(t, err)

	t.Setenv("MIN_BILLED_SEATS", "three")
	_, err = envInt64("MIN_BILLED_SEATS", DefaultMinBilledSeats)
	assert.Error(t, err)
}
