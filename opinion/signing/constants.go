package signing

const (
	// ExchangeDomainName is the EIP-712 domain name of the Opinion CTF exchange.
	ExchangeDomainName = "OPINION CTF Exchange"

	// ExchangeVersion is the EIP-712 domain version.
	ExchangeVersion = "1"

	// ExchangeContract is the verifying contract checked by the exchange.
	ExchangeContract = "0x5f45344126d6488025b0b84a3a8189f2487a7246"
)
