package client

const (
	// DefaultHost is the Opinion API proxy host.
	DefaultHost = "https://proxy.opinion.trade:8443"

	// Referer sent with every request; the API rejects calls without it.
	Referer = "https://app.opinion.trade/"

	topicEndpoint = "/api/bsc/api/v2/topic"
	orderEndpoint = "/api/bsc/api/v2/order"
)
