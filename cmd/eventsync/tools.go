package main

import (
	"context"

	"github.com/eventsync-labs/agent/pkg/agent/tools"
	"github.com/eventsync-labs/agent/pkg/eventbrite"
	"github.com/eventsync-labs/agent/pkg/poap"
	"github.com/eventsync-labs/agent/pkg/wallet"
)

const mintPOAPPrompt = `This tool mints a POAP to an attendee using the POAP API. It requires the attendee's address (Ethereum address, ENS, or email), the claim code (qr_hash), and the claim secret.
Always make sure to get a valid claim code and claim secret before trying to mint the POAP.
Questions that can trigger this tool include:
- "Mint a POAP to attendee@example.com using claim code xyz123 and secret abc456."
- "I want to mint a POAP to attendee@example.com with qr_hash abc123 and secret xyz789."`

const getClaimSecretPrompt = `This tool retrieves the claim secret for a POAP QR hash using the POAP API.
Always make sure to get a valid claim code, i.e. qr_hash.
Questions that can trigger this tool include:
- "Get the claim secret for the QR hash abc123def456."
- "Retrieve the claim secret for the hash xyz789abc012."`

const getClaimCodesPrompt = `This tool retrieves claim codes (QR hashes) for a POAP event using the POAP API.
Always make sure to get the POAP event ID and the claim secret.
Questions that can trigger this tool include:
- "Get the claim codes for POAP event ID 182857 with the secret code 517278."
- "Retrieve the QR hashes for event 12345 with the code 987654."`

const retrieveEventPrompt = `This tool retrieves an Eventbrite event using the Eventbrite API.
Always make sure to get the Eventbrite event ID.
Questions that can trigger this tool include:
- "Get the event details for the event with event ID 1246643."
- "What is the event for ID 12345?"
- "Retrieve the event details for ID 12342."`

const listAttendeesPrompt = `This tool retrieves a list of attendees for an Eventbrite event using the Eventbrite API.
Always make sure to get the Eventbrite event ID.
Questions that can trigger this tool include:
- "Get the attendees for event ID 12345."
- "List all attendees for the event with ID 67890."`

const createEventPrompt = `This tool creates a draft Eventbrite event under an organization using the Eventbrite API.
It requires the organization ID, the event name, the start and end times in UTC, and the timezone. The currency is optional and defaults to USD.
Questions that can trigger this tool include:
- "Create an event called Web3 Meetup for organization 987654 starting 2026-09-01T17:00:00Z."
- "Set up a new Eventbrite event named GoLab under org 12345."`

const walletInfoPrompt = `This tool reports the agent's persisted wallet details: the wallet ID, network, and default address. It takes no input.
Questions that can trigger this tool include:
- "What wallet are you using?"
- "Show me your wallet details."`

func registerTools(r *tools.Registry, poapClient *poap.Client, ebClient *eventbrite.Client, walletStore *wallet.Store) {
	r.Register(tools.New("mint_poap").
		Description(mintPOAPPrompt).
		StringParam("address", "The attendee's address: Ethereum address, ENS, or email.", "attendee@example.com", true).
		StringParam("qr_hash", "The QR hash (claim code) for the POAP.", "abc123def456", true).
		StringParam("secret", "The claim secret for the POAP.", "1997efc56b68f5725e6737a3452d5da0c0dea497a5adff70c92f89755f266fa5", true).
		Handler(func(ctx context.Context, in tools.Input) (any, error) {
			return poapClient.Mint(ctx, in.String("address"), in.String("qr_hash"), in.String("secret"))
		}).
		Build())

	r.Register(tools.New("get_claim_secret").
		Description(getClaimSecretPrompt).
		StringParam("qr_hash", "The QR hash (claim code) to retrieve the claim secret for.", "abc123def456", true).
		Handler(func(ctx context.Context, in tools.Input) (any, error) {
			return poapClient.ClaimSecret(ctx, in.String("qr_hash"))
		}).
		Build())

	r.Register(tools.New("get_claim_codes").
		Description(getClaimCodesPrompt).
		StringParam("event_id", "The ID of the POAP event to retrieve claim codes for.", "182857", true).
		StringParam("secret_code", "The secret code associated with the POAP event.", "517278", true).
		Handler(func(ctx context.Context, in tools.Input) (any, error) {
			return poapClient.ClaimCodes(ctx, in.String("event_id"), in.String("secret_code"))
		}).
		Build())

	r.Register(tools.New("retrieve_event").
		Description(retrieveEventPrompt).
		StringParam("event_id", "The ID of the Eventbrite event to retrieve.", "12345", true).
		Handler(func(ctx context.Context, in tools.Input) (any, error) {
			return ebClient.RetrieveEvent(ctx, in.String("event_id"))
		}).
		Build())

	r.Register(tools.New("list_attendees").
		Description(listAttendeesPrompt).
		StringParam("event_id", "The ID of the Eventbrite event to retrieve attendees for.", "12345", true).
		Handler(func(ctx context.Context, in tools.Input) (any, error) {
			return ebClient.ListAttendees(ctx, in.String("event_id"))
		}).
		Build())

	r.Register(tools.New("create_event").
		Description(createEventPrompt).
		StringParam("organization_id", "The ID of the Eventbrite organization the event belongs to.", "987654321", true).
		StringParam("name", "The name of the event.", "Web3 Community Meetup", true).
		StringParam("start_time", "Event start in UTC, Eventbrite format.", "2026-09-01T17:00:00Z", true).
		StringParam("end_time", "Event end in UTC, Eventbrite format.", "2026-09-01T19:00:00Z", true).
		StringParam("timezone", "IANA timezone of the event.", "America/Los_Angeles", true).
		StringParam("currency", "ISO 4217 currency for ticket prices. Defaults to USD.", "USD", false).
		Handler(func(ctx context.Context, in tools.Input) (any, error) {
			return ebClient.CreateEvent(ctx, in.String("organization_id"), eventbrite.CreateEventParams{
				Name:     in.String("name"),
				StartUTC: in.String("start_time"),
				EndUTC:   in.String("end_time"),
				Timezone: in.String("timezone"),
				Currency: in.StringOr("currency", eventbrite.DefaultCurrency),
			})
		}).
		Build())

	r.Register(tools.New("get_wallet_info").
		Description(walletInfoPrompt).
		Handler(func(ctx context.Context, in tools.Input) (any, error) {
			return walletStore.Info()
		}).
		Build())
}
