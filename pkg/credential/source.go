// Package credential provides the credential accessor the upstream
// clients read from, plus the scheduled job that keeps the POAP bearer
// token fresh. Credentials are looked up per call rather than captured
// at init, so a refresh is visible to the next request immediately.
package credential

import "os"

// Well-known variable names used across the service.
const (
	POAPAPIKey       = "POAP_API_KEY"
	POAPAccessToken  = "POAP_ACCESS_TOKEN"
	POAPClientID     = "POAP_CLIENT_ID"
	POAPClientSecret = "POAP_CLIENT_SECRET"
	EventbriteToken  = "EVENTBRITE_API_KEY"
)

// Source resolves a named credential. Lookup returns "" when the
// credential is not set.
type Source interface {
	Lookup(name string) string
}

type envSource struct{}

// Env returns a Source backed by the process environment, re-read on
// every Lookup.
func Env() Source {
	return envSource{}
}

func (envSource) Lookup(name string) string {
	return os.Getenv(name)
}

// Static is a fixed credential map, used in tests.
type Static map[string]string

func (s Static) Lookup(name string) string {
	return s[name]
}
