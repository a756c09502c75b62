// Package shipping prices shipments through the GHN carrier API, with a
// constant-fee fallback for when the carrier cannot be reached.
package shipping

import "context"

// FallbackFee is the flat fee (VND) substituted whenever a rate lookup
// cannot be completed.
const FallbackFee = 30000.0

// DefaultEstimatedDays is used when the carrier supplies no leadtime.
const DefaultEstimatedDays = 3

// FeeRequest describes one rate lookup: origin district, destination
// district and ward, and the parcel weight in grams.
type FeeRequest struct {
	FromDistrictCode string `json:"from_district_code"`
	ToDistrictCode   string `json:"to_district_code"`
	ToWardCode       string `json:"to_ward_code"`
	WeightGram       int    `json:"weight_gram"`
}

// FeeResponse carries the priced fee and the estimated delivery window.
type FeeResponse struct {
	Fee           float64 `json:"fee"`
	EstimatedDays int     `json:"estimated_days"`
	Provider      string  `json:"provider"`
}

// RateLookup is the capability checkout depends on. Implementations:
// GHNClient (real HTTP call) and FixedRate (constant fee).
type RateLookup interface {
	CalculateFee(ctx context.Context, req FeeRequest) (*FeeResponse, error)
}

// FixedRate is a RateLookup that always returns the same fee. It backs the
// degraded path when the carrier is unreachable and keeps the fallback
// policy independently testable.
type FixedRate struct {
	Fee           float64
	EstimatedDays int
	Provider      string
}

// NewFallbackRate returns the FixedRate used when GHN fails.
func NewFallbackRate() *FixedRate {
	return &FixedRate{
		Fee:           FallbackFee,
		EstimatedDays: DefaultEstimatedDays,
		Provider:      "GHN (Fallback)",
	}
}

// CalculateFee returns the constant fee. It never fails.
func (f *FixedRate) CalculateFee(_ context.Context, _ FeeRequest) (*FeeResponse, error) {
	return &FeeResponse{
		Fee:           f.Fee,
		EstimatedDays: f.EstimatedDays,
		Provider:      f.Provider,
	}, nil
}
