package types

// Order is an unsigned exchange order. Numeric uint256 fields are carried as
// decimal strings; maker and signer are stored lower-cased so that signature
// verification and venue-side comparison succeed regardless of input casing.
type Order struct {
	Salt          string        `json:"salt"`
	Maker         string        `json:"maker"`
	Signer        string        `json:"signer"`
	Taker         string        `json:"taker"`
	TokenID       string        `json:"tokenId"`
	MakerAmount   string        `json:"makerAmount"`
	TakerAmount   string        `json:"takerAmount"`
	Expiration    string        `json:"expiration"`
	Nonce         string        `json:"nonce"`
	FeeRateBps    string        `json:"feeRateBps"`
	Side          Side          `json:"side"`
	SignatureType SignatureType `json:"signatureType"`
}

// SignedOrder is an Order plus its EIP-712 signature. It lives only for the
// duration of one submission and is never reused or persisted.
type SignedOrder struct {
	Order
	Signature string `json:"signature"`
}

// OrderRequest is the flattened wire payload of the order submission endpoint.
// Side and signatureType are rendered as decimal strings per the venue schema;
// the signature is duplicated into the legacy "sign" field.
type OrderRequest struct {
	TopicID         int64  `json:"topicId"`
	ContractAddress string `json:"contractAddress"`
	Price           string `json:"price"`
	TradingMethod   int    `json:"tradingMethod"`
	Salt            string `json:"salt"`
	Maker           string `json:"maker"`
	Signer          string `json:"signer"`
	Taker           string `json:"taker"`
	TokenID         string `json:"tokenId"`
	MakerAmount     string `json:"makerAmount"`
	TakerAmount     string `json:"takerAmount"`
	Expiration      string `json:"expiration"`
	Nonce           string `json:"nonce"`
	FeeRateBps      string `json:"feeRateBps"`
	Side            string `json:"side"`
	SignatureType   string `json:"signatureType"`
	Signature       string `json:"signature"`
	Timestamp       int64  `json:"timestamp"`
	Sign            string `json:"sign"`
	SafeRate        string `json:"safeRate"`
	OrderExpTime    string `json:"orderExpTime"`
	CurrencyAddress string `json:"currencyAddress"`
	ChainID         int    `json:"chainId"`
}

// OrderData is the result payload of a successful order submission.
type OrderData struct {
	OrderID string `json:"orderId"`
}

// OrderResult is the result field of the order submission response.
type OrderResult struct {
	OrderData OrderData `json:"orderData"`
}

// OrderResponse is the full order submission envelope.
type OrderResponse struct {
	Envelope
	Result OrderResult `json:"result"`
}
