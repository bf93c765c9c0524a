// Package poap is a thin client for the POAP API. Every method issues
// one call and returns a human-readable result string; HTTP-level
// failures are part of that string, never an error. Credentials are
// resolved per call so a background token refresh takes effect on the
// next request.
package poap

import (
	"context"
	"net/url"

	"github.com/eventsync-labs/agent/pkg/credential"
	"github.com/eventsync-labs/agent/pkg/httpapi"
)

const DefaultBaseURL = "https://api.poap.tech"

type Client struct {
	api   *httpapi.Client
	creds credential.Source
}

func New(baseURL string, creds credential.Source, opts ...httpapi.Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		api:   httpapi.New(baseURL, opts...),
		creds: creds,
	}
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.creds.Lookup(credential.POAPAccessToken),
		"X-API-Key":     c.creds.Lookup(credential.POAPAPIKey),
	}
}

// Mint claims a POAP for an attendee. The address may be an Ethereum
// address, an ENS name, or an email; sendEmail makes POAP deliver the
// mint link to email recipients.
func (c *Client) Mint(ctx context.Context, address, qrHash, secret string) (string, error) {
	result, err := c.api.Do(ctx, httpapi.Request{
		Method:  "POST",
		Path:    "/actions/claim-qr",
		Headers: c.headers(),
		Body: map[string]any{
			"sendEmail": true,
			"address":   address,
			"qr_hash":   qrHash,
			"secret":    secret,
		},
	})
	if err != nil {
		return "", err
	}

	if !result.OK() {
		return result.Failure("mint POAP"), nil
	}
	return result.Success("POAP minted"), nil
}

// ClaimSecret fetches the claim secret for a QR hash. The secret is
// required before the corresponding code can be minted.
func (c *Client) ClaimSecret(ctx context.Context, qrHash string) (string, error) {
	result, err := c.api.Do(ctx, httpapi.Request{
		Method:  "GET",
		Path:    "/actions/claim-qr",
		Headers: c.headers(),
		Query:   url.Values{"qr_hash": []string{qrHash}},
	})
	if err != nil {
		return "", err
	}

	if !result.OK() {
		return result.Failure("retrieve claim secret"), nil
	}
	return result.Success("Claim secret retrieved"), nil
}

// ClaimCodes lists the claim codes (QR hashes) of a POAP event.
func (c *Client) ClaimCodes(ctx context.Context, eventID, secretCode string) (string, error) {
	result, err := c.api.Do(ctx, httpapi.Request{
		Method:  "POST",
		Path:    "/event/" + url.PathEscape(eventID) + "/qr-codes",
		Headers: c.headers(),
		Body: map[string]any{
			"secret_code": secretCode,
		},
	})
	if err != nil {
		return "", err
	}

	if !result.OK() {
		return result.Failure("retrieve claim codes"), nil
	}
	return result.Success("Claim codes retrieved"), nil
}
