package client

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kalhintz/opinion-auto-trade/opinion/types"
)

func TestCalculateOrderAmounts_Buy(t *testing.T) {
	amount := decimal.RequireFromString("5")
	price := decimal.RequireFromString("0.105")

	maker, taker, err := CalculateOrderAmounts(types.SideBuy, amount, price)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	// BUY: maker = notional paid, taker = shares received.
	if maker != "5000000000000000000" {
		t.Fatalf("maker mismatch: got %s", maker)
	}
	// 5 / 0.105 = 47.619047... rounded at the 18th fractional digit.
	if taker != "47619047619047619048" {
		t.Fatalf("taker mismatch: got %s", taker)
	}
}

func TestCalculateOrderAmounts_SellSwapsLegs(t *testing.T) {
	amount := decimal.RequireFromString("2.5")
	price := decimal.RequireFromString("0.5")

	buyMaker, buyTaker, err := CalculateOrderAmounts(types.SideBuy, amount, price)
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	sellMaker, sellTaker, err := CalculateOrderAmounts(types.SideSell, amount, price)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}

	if buyMaker != sellTaker || buyTaker != sellMaker {
		t.Fatalf("sell should invert buy legs: buy=(%s,%s) sell=(%s,%s)",
			buyMaker, buyTaker, sellMaker, sellTaker)
	}
	if buyMaker != "2500000000000000000" || buyTaker != "5000000000000000000" {
		t.Fatalf("unexpected legs: maker=%s taker=%s", buyMaker, buyTaker)
	}
}

func TestCalculateOrderAmounts_InvalidPrice(t *testing.T) {
	amount := decimal.RequireFromString("5")

	for _, raw := range []string{"0", "-0.1"} {
		price := decimal.RequireFromString(raw)
		_, _, err := CalculateOrderAmounts(types.SideBuy, amount, price)
		if !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("price %s: expected ErrInvalidPrice, got %v", raw, err)
		}
	}
}

func TestParsePrice(t *testing.T) {
	if _, err := ParsePrice("0.105"); err != nil {
		t.Fatalf("valid price rejected: %v", err)
	}
	for _, raw := range []string{"", "abc", "0", "-1"} {
		if _, err := ParsePrice(raw); !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("price %q: expected ErrInvalidPrice, got %v", raw, err)
		}
	}
}

func TestAdjustBuyPrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0.10", "0.105"},
		{"0.20", "0.21"}, // trailing zeros are not rendered
		{"0.5", "0.525"},
		{"0.333", "0.35"},  // 0.34965 rounds up at 3 decimals
		{"0.952", "0.999"}, // 0.9996 exceeds the ceiling
		{"1.5", "0.999"},   // out-of-range quote is clamped, not rejected
		{"10", "0.999"},
	}
	for _, tc := range cases {
		got := AdjustBuyPrice(decimal.RequireFromString(tc.in))
		if got.String() != tc.want {
			t.Fatalf("adjust(%s): got %s want %s", tc.in, got, tc.want)
		}
	}
}

func TestAdjustBuyPrice_BoundedAndQuantized(t *testing.T) {
	for _, raw := range []string{"0.001", "0.049", "0.123456", "0.7", "0.999", "3.14"} {
		got := AdjustBuyPrice(decimal.RequireFromString(raw))
		if got.GreaterThan(decimal.RequireFromString("0.999")) {
			t.Fatalf("adjust(%s) exceeds ceiling: %s", raw, got)
		}
		if !got.Equal(got.Round(3)) {
			t.Fatalf("adjust(%s) not quantized to 3 decimals: %s", raw, got)
		}
	}
}

func TestBuildOrder_Defaults(t *testing.T) {
	order := BuildOrder(OrderParams{
		Maker:       "0xABCDEF0000000000000000000000000000000001",
		Signer:      "0xABCDEF0000000000000000000000000000000002",
		TokenID:     "42",
		MakerAmount: "1",
		TakerAmount: "2",
		Side:        types.SideBuy,
	})

	if order.Maker != strings.ToLower("0xABCDEF0000000000000000000000000000000001") {
		t.Fatalf("maker not lower-cased: %s", order.Maker)
	}
	if order.Signer != strings.ToLower("0xABCDEF0000000000000000000000000000000002") {
		t.Fatalf("signer not lower-cased: %s", order.Signer)
	}
	if order.Taker != types.ZeroAddress {
		t.Fatalf("taker should be the zero address: %s", order.Taker)
	}
	if order.Expiration != "0" || order.Nonce != "0" || order.FeeRateBps != "0" {
		t.Fatalf("defaults wrong: exp=%s nonce=%s fee=%s", order.Expiration, order.Nonce, order.FeeRateBps)
	}
	if order.SignatureType != types.SignatureTypeGnosisSafe {
		t.Fatalf("unexpected signature type: %d", order.SignatureType)
	}
	if order.Salt == "" {
		t.Fatal("salt missing")
	}
}

func TestBuildOrder_UniqueSalts(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		order := BuildOrder(OrderParams{Side: types.SideBuy})
		if seen[order.Salt] {
			t.Fatalf("duplicate salt %s", order.Salt)
		}
		seen[order.Salt] = true
	}
}

func TestNewOrderRequest_WireMapping(t *testing.T) {
	signed := &types.SignedOrder{
		Order: types.Order{
			Salt:          "1700000000000",
			Maker:         "0xmaker",
			Signer:        "0xsigner",
			Taker:         types.ZeroAddress,
			TokenID:       "99",
			MakerAmount:   "5000000000000000000",
			TakerAmount:   "47619047619047619048",
			Expiration:    "0",
			Nonce:         "0",
			FeeRateBps:    "0",
			Side:          types.SideBuy,
			SignatureType: types.SignatureTypeGnosisSafe,
		},
		Signature: "0xdeadbeef",
	}

	req := NewOrderRequest(signed, 123, "0.105")

	if req.TopicID != 123 || req.Price != "0.105" {
		t.Fatalf("market context wrong: topicId=%d price=%s", req.TopicID, req.Price)
	}
	if req.Side != "0" || req.SignatureType != "2" {
		t.Fatalf("numeric tags should be decimal strings: side=%q sigType=%q", req.Side, req.SignatureType)
	}
	if req.Signature != "0xdeadbeef" || req.Sign != "0xdeadbeef" {
		t.Fatalf("signature must be duplicated into sign: %q / %q", req.Signature, req.Sign)
	}
	if req.SafeRate != SafeRate {
		t.Fatalf("safeRate annotation wrong: %s", req.SafeRate)
	}
	if req.CurrencyAddress != types.USDTAddress || req.ChainID != 56 {
		t.Fatalf("chain context wrong: currency=%s chainId=%d", req.CurrencyAddress, req.ChainID)
	}
	if req.TradingMethod != 2 {
		t.Fatalf("tradingMethod wrong: %d", req.TradingMethod)
	}
	if req.OrderExpTime != "0" {
		t.Fatalf("orderExpTime wrong: %s", req.OrderExpTime)
	}
	if req.Timestamp <= 0 {
		t.Fatalf("timestamp missing: %d", req.Timestamp)
	}
}
