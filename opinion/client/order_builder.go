package client

import (
	"crypto/ecdsa"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kalhintz/opinion-auto-trade/opinion/signing"
	"github.com/kalhintz/opinion-auto-trade/opinion/types"
)

// SafeRate is the fixed price-safety margin applied to buy quotes and
// annotated on every order payload.
const SafeRate = "0.05"

var (
	safeRate = decimal.RequireFromString(SafeRate)
	// maxPrice is the venue's highest representable price; outcome prices are
	// probabilities strictly below 1.
	maxPrice = decimal.RequireFromString("0.999")
)

// ParsePrice parses a quoted price string. Anything that is not a decimal
// number strictly greater than zero is an invalid price.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	if price.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidPrice, price)
	}
	return price, nil
}

// AdjustBuyPrice applies the safety margin to a quoted price: the buyer
// pre-commits to a slightly worse price so the order stays marketable if the
// quote moves between display and fill. The result is clamped to maxPrice and
// quantized to 3 decimals.
func AdjustBuyPrice(price decimal.Decimal) decimal.Decimal {
	adjusted := price.Mul(decimal.NewFromInt(1).Add(safeRate))
	if adjusted.GreaterThan(maxPrice) {
		adjusted = maxPrice
	}
	return adjusted.Round(3)
}

// CalculateOrderAmounts converts a notional amount and a price into the two
// order legs as 10^18 fixed-point decimal strings. For a BUY the maker amount
// is the notional paid and the taker amount the shares received; a SELL
// inverts the roles.
func CalculateOrderAmounts(side types.Side, amount, price decimal.Decimal) (makerAmount, takerAmount string, err error) {
	if price.Sign() <= 0 {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidPrice, price)
	}

	amountWei := amount.Shift(18).Truncate(0)
	shares := amount.DivRound(price, 18)
	sharesWei := shares.Shift(18).Truncate(0)

	if side == types.SideBuy {
		return amountWei.String(), sharesWei.String(), nil
	}
	return sharesWei.String(), amountWei.String(), nil
}

// OrderParams are the caller-supplied fields of an unsigned order.
type OrderParams struct {
	Maker       string
	Signer      string
	TokenID     string
	MakerAmount string
	TakerAmount string
	Side        types.Side
	Expiration  string // "0" = never expires (default)
	FeeRateBps  string // default "0"
}

// BuildOrder assembles an unsigned order with a fresh salt. Maker and signer
// are lower-cased; the taker is the zero address so anyone may fill.
func BuildOrder(p OrderParams) *types.Order {
	expiration := p.Expiration
	if expiration == "" {
		expiration = "0"
	}
	feeRateBps := p.FeeRateBps
	if feeRateBps == "" {
		feeRateBps = "0"
	}

	return &types.Order{
		Salt:          signing.NextSaltString(),
		Maker:         strings.ToLower(p.Maker),
		Signer:        strings.ToLower(p.Signer),
		Taker:         types.ZeroAddress,
		TokenID:       p.TokenID,
		MakerAmount:   p.MakerAmount,
		TakerAmount:   p.TakerAmount,
		Expiration:    expiration,
		Nonce:         "0",
		FeeRateBps:    feeRateBps,
		Side:          p.Side,
		SignatureType: types.SignatureTypeGnosisSafe,
	}
}

// NewOrderRequest projects a signed order plus market context into the wire
// payload of the order endpoint.
func NewOrderRequest(signed *types.SignedOrder, topicID int64, price string) *types.OrderRequest {
	return &types.OrderRequest{
		TopicID:         topicID,
		ContractAddress: "",
		Price:           price,
		TradingMethod:   2,
		Salt:            signed.Salt,
		Maker:           signed.Maker,
		Signer:          signed.Signer,
		Taker:           signed.Taker,
		TokenID:         signed.TokenID,
		MakerAmount:     signed.MakerAmount,
		TakerAmount:     signed.TakerAmount,
		Expiration:      signed.Expiration,
		Nonce:           signed.Nonce,
		FeeRateBps:      signed.FeeRateBps,
		Side:            strconv.Itoa(int(signed.Side)),
		SignatureType:   strconv.Itoa(int(signed.SignatureType)),
		Signature:       signed.Signature,
		Timestamp:       time.Now().Unix(),
		Sign:            signed.Signature,
		SafeRate:        SafeRate,
		OrderExpTime:    signed.Expiration,
		CurrencyAddress: types.USDTAddress,
		ChainID:         int(types.ChainBSC),
	}
}

// BuildSignedOrderRequest runs the full order pipeline for one quote: signer
// verification, price safety adjustment, amount calculation, order assembly,
// EIP-712 signing, and wire encoding.
func BuildSignedOrderRequest(
	privateKey *ecdsa.PrivateKey,
	makerAddress, signerAddress string,
	topicID int64,
	tokenID string,
	side types.Side,
	amount decimal.Decimal,
	rawPrice string,
) (*types.OrderRequest, error) {
	if err := signing.VerifySigner(privateKey, signerAddress); err != nil {
		return nil, err
	}

	quoted, err := ParsePrice(rawPrice)
	if err != nil {
		return nil, err
	}
	price := AdjustBuyPrice(quoted)

	makerAmount, takerAmount, err := CalculateOrderAmounts(side, amount, price)
	if err != nil {
		return nil, err
	}

	order := BuildOrder(OrderParams{
		Maker:       makerAddress,
		Signer:      signerAddress,
		TokenID:     tokenID,
		MakerAmount: makerAmount,
		TakerAmount: takerAmount,
		Side:        side,
	})

	signed, err := signing.SignOrder(privateKey, types.ChainBSC, order)
	if err != nil {
		return nil, err
	}

	return NewOrderRequest(signed, topicID, price.String()), nil
}
