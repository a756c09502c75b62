package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// DefaultGHNFeeURL is the public GHN shipping fee endpoint.
const DefaultGHNFeeURL = "https://online-gateway.ghn.vn/shiip/public-api/v2/shipping-order/fee"

// Config holds GHN connection details.
type Config struct {
	FeeURL  string
	Token   string
	ShopID  string
	Timeout time.Duration
}

// GHNClient is the HTTP-backed RateLookup. Every call is bounded by the
// configured timeout so a dead carrier endpoint cannot hang checkout.
type GHNClient struct {
	feeURL string
	token  string
	shopID string
	http   *http.Client
}

// NewGHNClient creates a new GHN client from the given config.
func NewGHNClient(cfg Config) *GHNClient {
	if cfg.FeeURL == "" {
		cfg.FeeURL = DefaultGHNFeeURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &GHNClient{
		feeURL: cfg.FeeURL,
		token:  cfg.Token,
		shopID: cfg.ShopID,
		http:   &http.Client{Timeout: cfg.Timeout},
	}
}

// ghnFeeBody is the GHN fee request payload. service_type_id 2 is the
// light-goods / e-commerce service; parcel dimensions are fixed because
// only weight varies per checkout group.
type ghnFeeBody struct {
	ServiceTypeID  int     `json:"service_type_id"`
	FromDistrictID int     `json:"from_district_id"`
	ToDistrictID   int     `json:"to_district_id"`
	ToWardCode     string  `json:"to_ward_code"`
	Weight         int     `json:"weight"`
	Length         int     `json:"length"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	InsuranceValue int     `json:"insurance_value"`
	Coupon         *string `json:"coupon"`
}

type ghnFeeData struct {
	Total json.Number `json:"total"`
}

type ghnFeeResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    *ghnFeeData `json:"data"`
}

// CalculateFee calls the GHN fee endpoint and returns the priced fee.
// Any transport, status, or parse failure is returned as an error; the
// caller decides the fallback.
func (c *GHNClient) CalculateFee(ctx context.Context, req FeeRequest) (*FeeResponse, error) {
	fromDistrict, err := strconv.Atoi(req.FromDistrictCode)
	if err != nil {
		return nil, fmt.Errorf("invalid from district code %q: %w", req.FromDistrictCode, err)
	}
	toDistrict, err := strconv.Atoi(req.ToDistrictCode)
	if err != nil {
		return nil, fmt.Errorf("invalid to district code %q: %w", req.ToDistrictCode, err)
	}

	body := ghnFeeBody{
		ServiceTypeID:  2,
		FromDistrictID: fromDistrict,
		ToDistrictID:   toDistrict,
		ToWardCode:     req.ToWardCode,
		Weight:         req.WeightGram,
		Length:         20,
		Width:          15,
		Height:         10,
		InsuranceValue: 0,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal GHN fee request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.feeURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build GHN fee request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("token", c.token)
	if c.shopID != "" {
		httpReq.Header.Set("ShopId", c.shopID)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("GHN fee request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("GHN fee request rejected: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var feeResp ghnFeeResponse
	if err := json.NewDecoder(resp.Body).Decode(&feeResp); err != nil {
		return nil, fmt.Errorf("failed to decode GHN fee response: %w", err)
	}
	if feeResp.Data == nil {
		return nil, fmt.Errorf("GHN fee response missing data: code=%d message=%s", feeResp.Code, feeResp.Message)
	}
	total, err := feeResp.Data.Total.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid GHN fee total %q: %w", feeResp.Data.Total.String(), err)
	}

	return &FeeResponse{
		Fee:           total,
		EstimatedDays: DefaultEstimatedDays, // fee endpoint carries no leadtime
		Provider:      "GHN Express",
	}, nil
}

// CreateShippingOrder registers a carrier order and returns its tracking
// number. TODO: call the GHN create-order endpoint once credentials for it
// are provisioned; until then the tracking number is generated locally.
func (c *GHNClient) CreateShippingOrder(orderID string) string {
	return fmt.Sprintf("GHN_ORDER_%d", time.Now().UnixMilli())
}
