// Package conversation persists chat sessions.
package conversation

import (
	"context"

	"github.com/eventsync-labs/agent/pkg/agent/types"
)

// Store defines conversation persistence. Get returns (nil, nil) when
// the id is unknown.
type Store interface {
	Get(ctx context.Context, id string) (*types.Conversation, error)
	Save(ctx context.Context, conv *types.Conversation) error
	Delete(ctx context.Context, id string) error
}
