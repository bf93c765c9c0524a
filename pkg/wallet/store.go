// Package wallet persists the agent's wallet data blob. The blob is
// produced and consumed by an external wallet toolkit; this store only
// loads it at startup and writes it back when the toolkit re-exports
// it. Info gives a redacted view safe to show in a conversation.
package wallet

import (
	"encoding/json"
	"fmt"
	"os"
)

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted wallet data. A missing file is not an
// error; it means no wallet has been provisioned yet.
func (s *Store) Load() (data string, found bool, err error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading wallet data: %w", err)
	}
	return string(raw), true, nil
}

// Save writes the wallet data blob back to disk.
func (s *Store) Save(data string) error {
	if err := os.WriteFile(s.path, []byte(data), 0o600); err != nil {
		return fmt.Errorf("writing wallet data: %w", err)
	}
	return nil
}

// Info returns a human-readable summary of the persisted wallet. The
// seed material stays on disk; only identifiers are reported.
func (s *Store) Info() (string, error) {
	data, found, err := s.Load()
	if err != nil {
		return "", err
	}
	if !found {
		return "No wallet data has been persisted yet.", nil
	}

	var fields struct {
		WalletID         string `json:"wallet_id"`
		NetworkID        string `json:"network_id"`
		DefaultAddressID string `json:"default_address_id"`
	}
	if err := json.Unmarshal([]byte(data), &fields); err != nil || fields.WalletID == "" {
		return fmt.Sprintf("Wallet data is persisted at %s (opaque format).", s.path), nil
	}

	summary := fmt.Sprintf("Wallet %s", fields.WalletID)
	if fields.NetworkID != "" {
		summary += fmt.Sprintf(" on network %s", fields.NetworkID)
	}
	if fields.DefaultAddressID != "" {
		summary += fmt.Sprintf(" with default address %s", fields.DefaultAddressID)
	}
	return summary + ".", nil
}
