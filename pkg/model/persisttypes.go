// Package model contains the general data models and interfaces for the heartbeat.
package model // import "github.com/juicetools/juicebox-heartbeat/pkg/model"

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// CheckpointPersister is the interface to store the per-category
// checkpoints across runs
type CheckpointPersister interface {
	// Checkpoints returns the persisted checkpoint for every category,
	// defaulting to the current time when no state was ever persisted
	Checkpoints() (Checkpoints, error)
	// SaveCheckpoints fully overwrites the persisted state with cps
	SaveCheckpoints(cps Checkpoints) error
}

// EventFetcher is the interface for implementations of the subgraph
// event fetcher
type EventFetcher interface {
	// PayEventsSince returns payment events strictly newer than sinceTs
	PayEventsSince(ctx context.Context, sinceTs int64) ([]*PayEvent, error)
	// ProjectCreateEventsSince returns project creation events strictly
	// newer than sinceTs
	ProjectCreateEventsSince(ctx context.Context, sinceTs int64) ([]*ProjectCreateEvent, error)
}

// MetadataResolver is the interface for implementations of the project
// metadata resolver
type MetadataResolver interface {
	ResolveMetadata(ctx context.Context, metadataURI string) (*ProjectMetadata, error)
}

// IdentityResolver is the interface for implementations of the address
// name resolver
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, address common.Address) (*DisplayIdentity, error)
}

// TextConverter is the interface for implementations of the HTML to
// markdown description converter
type TextConverter interface {
	ConvertToMarkdown(text string) (string, error)
}

// DeliveryChannel is the interface for implementations of the
// notification delivery channel
type DeliveryChannel interface {
	// Send delivers the notification to a single destination
	Send(ctx context.Context, destination string, notification *Notification) error
}

// ErrorLogger is the interface for the append-only operational error log
type ErrorLogger interface {
	Append(entry string)
}
