package types

// Side is the order direction. The exchange contract encodes it as uint8.
type Side int

const (
	SideBuy  Side = 0
	SideSell Side = 1
)

func (s Side) String() string {
	if s == SideSell {
		return "SELL"
	}
	return "BUY"
}

// SignatureType identifies the wallet scheme behind the order signature.
type SignatureType int

const (
	SignatureTypeEOA        SignatureType = 0 // standard Ethereum wallet
	SignatureTypeProxy      SignatureType = 1 // email/social-login proxy wallet
	SignatureTypeGnosisSafe SignatureType = 2 // Gnosis Safe proxy wallet (Opinion default)
)

// Chain is the blockchain network id.
type Chain int

const (
	ChainBSC Chain = 56
)

const (
	// ZeroAddress as taker means anyone may fill the order.
	ZeroAddress = "0x0000000000000000000000000000000000000000"

	// USDTAddress is the BSC USDT contract used as order collateral.
	USDTAddress = "0x55d398326f99059fF775485246999027B3197955"
)

// Envelope is the common response wrapper of the Opinion API.
// errno != 0 signals an application-level error even on HTTP 200.
type Envelope struct {
	Errno  int    `json:"errno"`
	Errmsg string `json:"errmsg"`
}
