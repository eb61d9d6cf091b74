package client

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Credentials is the per-request auth material. The bearer token is mutable at
// runtime, so the client re-reads it through a CredentialProvider on every call.
type Credentials struct {
	BearerToken       string
	DeviceFingerprint string
}

// CredentialProvider yields the current credentials.
type CredentialProvider interface {
	Credentials() Credentials
}

// Client is the Opinion venue HTTP client.
//
// resty reads proxy settings from the usual environment variables. Retries are
// deliberately disabled: a failed order is reported, never resubmitted.
type Client struct {
	http  *resty.Client
	creds CredentialProvider
}

// NewClient creates a venue client against host (DefaultHost if empty).
func NewClient(host string, creds CredentialProvider) *Client {
	if host == "" {
		host = DefaultHost
	}
	host = strings.TrimSuffix(host, "/")

	http := resty.New().
		SetBaseURL(host).
		SetTimeout(30 * time.Second)

	return &Client{http: http, creds: creds}
}

// newRequest builds a request carrying the browser-emulation header set the
// venue expects, plus the current bearer token and device fingerprint.
func (c *Client) newRequest(ctx context.Context) *resty.Request {
	cred := c.creds.Credentials()

	r := c.http.R()
	if ctx != nil {
		r.SetContext(ctx)
	}
	r.SetHeaders(map[string]string{
		"accept":                "application/json, text/plain, */*",
		"accept-language":       "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
		"authorization":         "Bearer " + cred.BearerToken,
		"cache-control":         "no-cache",
		"pragma":                "no-cache",
		"sec-ch-ua":             `"Chromium";v="142", "Google Chrome";v="142", "Not_A Brand";v="99"`,
		"sec-ch-ua-mobile":      "?0",
		"sec-ch-ua-platform":    `"Windows"`,
		"sec-fetch-dest":        "empty",
		"sec-fetch-mode":        "cors",
		"sec-fetch-site":        "same-site",
		"x-device-fingerprint":  cred.DeviceFingerprint,
		"x-device-kind":         "web",
		"Referer":               Referer,
	})
	return r
}
