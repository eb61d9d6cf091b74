package signing

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/kalhintz/opinion-auto-trade/opinion/types"
)

// ErrSignerMismatch means the configured signer address is not the address
// derived from the private key. Orders signed with the wrong key would be
// rejected on-chain, so this aborts before anything is submitted.
var ErrSignerMismatch = errors.New("signer address does not match private key")

// orderTypes is the exchange's Order struct schema. Field order and typing
// must match the verifying contract bit-exactly.
var orderTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"Order": {
		{Name: "salt", Type: "uint256"},
		{Name: "maker", Type: "address"},
		{Name: "signer", Type: "address"},
		{Name: "taker", Type: "address"},
		{Name: "tokenId", Type: "uint256"},
		{Name: "makerAmount", Type: "uint256"},
		{Name: "takerAmount", Type: "uint256"},
		{Name: "expiration", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "feeRateBps", Type: "uint256"},
		{Name: "side", Type: "uint8"},
		{Name: "signatureType", Type: "uint8"},
	},
}

// PrivateKeyFromHex parses a hex-encoded private key, with or without the
// 0x prefix.
func PrivateKeyFromHex(hexKey string) (*ecdsa.PrivateKey, error) {
	return crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
}

// AddressFromPrivateKey derives the public address for a private key.
func AddressFromPrivateKey(privateKey *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(privateKey.PublicKey)
}

// VerifySigner checks that the key-derived address equals the configured
// signer address (case-insensitive). Returns ErrSignerMismatch otherwise.
func VerifySigner(privateKey *ecdsa.PrivateKey, signerAddress string) error {
	derived := AddressFromPrivateKey(privateKey)
	if !strings.EqualFold(derived.Hex(), signerAddress) {
		return fmt.Errorf("%w: key derives %s, configured signer is %s",
			ErrSignerMismatch, derived.Hex(), signerAddress)
	}
	return nil
}

// SignOrder produces the EIP-712 signature binding the exchange domain to the
// order's fields and returns the order with its signature attached.
func SignOrder(privateKey *ecdsa.PrivateKey, chainID types.Chain, order *types.Order) (*types.SignedOrder, error) {
	domain := apitypes.TypedDataDomain{
		Name:              ExchangeDomainName,
		Version:           ExchangeVersion,
		ChainId:           math.NewHexOrDecimal256(int64(chainID)),
		VerifyingContract: ExchangeContract,
	}

	salt, err := bigFromDecimal("salt", order.Salt)
	if err != nil {
		return nil, err
	}
	tokenID, err := bigFromDecimal("tokenId", order.TokenID)
	if err != nil {
		return nil, err
	}
	makerAmount, err := bigFromDecimal("makerAmount", order.MakerAmount)
	if err != nil {
		return nil, err
	}
	takerAmount, err := bigFromDecimal("takerAmount", order.TakerAmount)
	if err != nil {
		return nil, err
	}
	expiration, err := bigFromDecimal("expiration", order.Expiration)
	if err != nil {
		return nil, err
	}
	nonce, err := bigFromDecimal("nonce", order.Nonce)
	if err != nil {
		return nil, err
	}
	feeRateBps, err := bigFromDecimal("feeRateBps", order.FeeRateBps)
	if err != nil {
		return nil, err
	}

	message := map[string]interface{}{
		"salt":          salt,
		"maker":         common.HexToAddress(order.Maker).Hex(),
		"signer":        common.HexToAddress(order.Signer).Hex(),
		"taker":         common.HexToAddress(order.Taker).Hex(),
		"tokenId":       tokenID,
		"makerAmount":   makerAmount,
		"takerAmount":   takerAmount,
		"expiration":    expiration,
		"nonce":         nonce,
		"feeRateBps":    feeRateBps,
		"side":          big.NewInt(int64(order.Side)),
		"signatureType": big.NewInt(int64(order.SignatureType)),
	}

	typedData := apitypes.TypedData{
		Types:       orderTypes,
		PrimaryType: "Order",
		Domain:      domain,
		Message:     message,
	}

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return nil, fmt.Errorf("hash order typed data: %w", err)
	}

	signature, err := crypto.Sign(hash, privateKey)
	if err != nil {
		return nil, fmt.Errorf("sign order: %w", err)
	}

	return &types.SignedOrder{
		Order:     *order,
		Signature: "0x" + common.Bytes2Hex(signature),
	}, nil
}

func bigFromDecimal(field, value string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("order field %s is not a decimal integer: %q", field, value)
	}
	return n, nil
}
