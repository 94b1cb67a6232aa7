package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"keepup-api/internal/constants"
)

// Default seat plan shape: the base line item covers the first three seats and
// every company is billed for at least three.
const (
	DefaultSeatsIncludedInBase = 3
	DefaultMinBilledSeats      = 3
)

// SecretSource resolves a secret by ARN env var with a direct env var
// fallback. Satisfied by aws.SecretsManagerClient.
type SecretSource interface {
	GetSecretString(ctx context.Context, arnEnvVar string, fallbackEnvVar string) (string, error)
}

// StripePriceIDs maps each billable SKU to its Stripe price id.
type StripePriceIDs struct {
	SeatBase    string
	SeatExtra   string
	Insights    string
	SiteBuilder string
}

// SKUPrice is one entry of the SKU→price table in its canonical order.
type SKUPrice struct {
	SKU     string
	PriceID string
}

// Ordered returns the price table in a stable order so that diffing and
// logging are deterministic.
func (p StripePriceIDs) Ordered() []SKUPrice {
	return []SKUPrice{
		{SKU: constants.SKUSeatBase, PriceID: p.SeatBase},
		{SKU: constants.SKUSeatExtra, PriceID: p.SeatExtra},
		{SKU: constants.SKUInsights, PriceID: p.Insights},
		{SKU: constants.SKUSiteBuilder, PriceID: p.SiteBuilder},
	}
}

// SKUForPriceID reverses the table; returns "" when the price id is not one
// of ours (e.g. a line item added manually in the Stripe dashboard).
func (p StripePriceIDs) SKUForPriceID(priceID string) string {
	for _, entry := range p.Ordered() {
		if entry.PriceID == priceID {
			return entry.SKU
		}
	}
	return ""
}

// BillingConfig carries everything the billing engine needs from the
// environment. Loaded once at startup; invalid configuration is fatal.
type BillingConfig struct {
	SecretKey           string
	WebhookSecret       string
	PriceIDs            StripePriceIDs
	SeatsIncludedInBase int64
	MinBilledSeats      int64
	AppBaseURL          string
}

var priceEnvVars = map[string]string{
	constants.SKUSeatBase:    "STRIPE_PRICE_SEAT_BASE",
	constants.SKUSeatExtra:   "STRIPE_PRICE_SEAT_EXTRA",
	constants.SKUInsights:    "STRIPE_PRICE_INSIGHTS",
	constants.SKUSiteBuilder: "STRIPE_PRICE_SITE_BUILDER",
}

// LoadBillingConfig reads and validates the billing configuration. Secrets may
// come from AWS Secrets Manager (ARN env vars) or directly from the
// environment; price ids are always plain env vars and are validated so that
// a product id pasted where a price id belongs fails loudly at startup.
func LoadBillingConfig(ctx context.Context, secrets SecretSource) (*BillingConfig, error) {
	secretKey, err := secrets.GetSecretString(ctx, "STRIPE_SECRET_KEY_ARN", "STRIPE_SECRET_KEY")
	if err != nil {
		return nil, fmt.Errorf("loading Stripe secret key: %w", err)
	}

	webhookSecret, err := secrets.GetSecretString(ctx, "STRIPE_WEBHOOK_SECRET_ARN", "STRIPE_WEBHOOK_SECRET")
	if err != nil {
		return nil, fmt.Errorf("loading Stripe webhook secret: %w", err)
	}

	priceIDs, err := loadPriceIDs(os.Getenv)
	if err != nil {
		return nil, err
	}

	includedSeats, err := envInt64("SEATS_INCLUDED_IN_BASE", DefaultSeatsIncludedInBase)
	if err != nil {
		return nil, err
	}
	minSeats, err := envInt64("MIN_BILLED_SEATS", DefaultMinBilledSeats)
	if err != nil {
		return nil, err
	}

	return &BillingConfig{
		SecretKey:           secretKey,
		WebhookSecret:       webhookSecret,
		PriceIDs:            priceIDs,
		SeatsIncludedInBase: includedSeats,
		MinBilledSeats:      minSeats,
		AppBaseURL:          strings.TrimRight(os.Getenv("APP_BASE_URL"), "/"),
	}, nil
}

func loadPriceIDs(getenv func(string) string) (StripePriceIDs, error) {
	values := make(map[string]string, len(priceEnvVars))
	for sku, envVar := range priceEnvVars {
		value := strings.TrimSpace(getenv(envVar))
		if err := validatePriceID(envVar, value); err != nil {
			return StripePriceIDs{}, err
		}
		values[sku] = value
	}

	return StripePriceIDs{
		SeatBase:    values[constants.SKUSeatBase],
		SeatExtra:   values[constants.SKUSeatExtra],
		Insights:    values[constants.SKUInsights],
		SiteBuilder: values[constants.SKUSiteBuilder],
	}, nil
}

func validatePriceID(envVar, value string) error {
	switch {
	case value == "":
		return fmt.Errorf("%s is not set; every SKU needs a Stripe price id", envVar)
	case strings.HasPrefix(value, "prod_"):
		return fmt.Errorf("%s holds a product id (%s); set the price id (price_...) for that product", envVar, value)
	case !strings.HasPrefix(value, "price_"):
		return fmt.Errorf("%s must be a Stripe price id (price_...), got %q", envVar, value)
	}
	return nil
}

func envInt64(envVar string, fallback int64) (int64, error) {
	raw := os.Getenv(envVar)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", envVar, raw)
	}
	return parsed, nil
}
