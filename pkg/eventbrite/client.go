// Package eventbrite is a thin client for the Eventbrite v3 API. Like
// the poap package, every method maps to one upstream call and folds
// the outcome into a result string.
package eventbrite

import (
	"context"
	"net/url"

	"github.com/eventsync-labs/agent/pkg/credential"
	"github.com/eventsync-labs/agent/pkg/httpapi"
)

const (
	DefaultBaseURL  = "https://www.eventbriteapi.com"
	DefaultCurrency = "USD"
)

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
		"Authorization": "Bearer " + c.creds.Lookup(credential.EventbriteToken),
	}
}

// RetrieveEvent fetches one event by ID.
func (c *Client) RetrieveEvent(ctx context.Context, eventID string) (string, error) {
	result, err := c.api.Do(ctx, httpapi.Request{
		Method:  "GET",
		Path:    "/v3/events/" + url.PathEscape(eventID) + "/",
		Headers: c.headers(),
	})
	if err != nil {
		return "", err
	}

	if !result.OK() {
		return result.Failure("retrieve event"), nil
	}
	return result.Success("Event retrieved"), nil
}

// ListAttendees fetches the attendees of an event.
func (c *Client) ListAttendees(ctx context.Context, eventID string) (string, error) {
	result, err := c.api.Do(ctx, httpapi.Request{
		Method:  "GET",
		Path:    "/v3/events/" + url.PathEscape(eventID) + "/attendees/",
		Headers: c.headers(),
	})
	if err != nil {
		return "", err
	}

	if !result.OK() {
		return result.Failure("retrieve attendees"), nil
	}
	return result.Success("Attendees retrieved"), nil
}

// CreateEventParams carries the fields for a new event. Times are UTC
// timestamps in Eventbrite's format (e.g. 2026-09-01T17:00:00Z).
type CreateEventParams struct {
	Name     string
	StartUTC string
	EndUTC   string
	Timezone string
	// Currency defaults to USD when empty.
	Currency string
}

// CreateEvent creates a draft event under an organization.
func (c *Client) CreateEvent(ctx context.Context, organizationID string, params CreateEventParams) (string, error) {
	currency := params.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	result, err := c.api.Do(ctx, httpapi.Request{
		Method:  "POST",
		Path:    "/v3/organizations/" + url.PathEscape(organizationID) + "/events/",
		Headers: c.headers(),
		Body: map[string]any{
			"event": map[string]any{
				"name": map[string]any{"html": params.Name},
				"start": map[string]any{
					"timezone": params.Timezone,
					"utc":      params.StartUTC,
				},
				"end": map[string]any{
					"timezone": params.Timezone,
					"utc":      params.EndUTC,
				},
				"currency": currency,
			},
		},
	})
	if err != nil {
		return "", err
	}

	if !result.OK() {
		return result.Failure("create event"), nil
	}
	return result.Success("Event created"), nil
}
