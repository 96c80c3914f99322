// Package model contains the general data models and interfaces for the heartbeat.
package model // import "github.com/juicetools/juicebox-heartbeat/pkg/model"

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// EventCategory is the category of subgraph event the heartbeat announces.
type EventCategory int

const (
	// CategoryInvalid is an invalid event category
	CategoryInvalid EventCategory = iota

	// CategoryPayment is a payment to a project
	CategoryPayment

	// CategoryProjectCreate is the creation of a new project
	CategoryProjectCreate
)

// String returns the subgraph entity name for the category
func (c EventCategory) String() string {
	switch c {
	case CategoryPayment:
		return "payEvent"
	case CategoryProjectCreate:
		return "projectCreateEvent"
	}
	return "invalid"
}

// Categories returns all valid event categories
func Categories() []EventCategory {
	return []EventCategory{CategoryPayment, CategoryProjectCreate}
}

// ProtocolVersion tags which generation of the protocol contracts emitted
// an event. It affects URL construction and field availability.
type ProtocolVersion string

const (
	// ProtocolV1 is the first generation of the protocol contracts
	ProtocolV1 ProtocolVersion = "1"

	// ProtocolV2 is the second generation of the protocol contracts
	ProtocolV2 ProtocolVersion = "2"
)

// PayEventParams contains the fields to pass to NewPayEvent
type PayEventParams struct {
	ProjectID   int64
	Pv          ProtocolVersion
	Handle      string
	MetadataURI string
	Amount      *big.Int
	Beneficiary common.Address
	TxHash      common.Hash
	Timestamp   int64
	Note        string
}

// NewPayEvent is a convenience function to init a PayEvent
func NewPayEvent(params *PayEventParams) *PayEvent {
	return &PayEvent{
		projectID:   params.ProjectID,
		pv:          params.Pv,
		handle:      params.Handle,
		metadataURI: params.MetadataURI,
		amount:      params.Amount,
		beneficiary: params.Beneficiary,
		txHash:      params.TxHash,
		timestamp:   params.Timestamp,
		note:        params.Note,
	}
}

// PayEvent represents a single payment to a project as returned by the
// subgraph. Immutable once fetched.
type PayEvent struct {
	projectID   int64
	pv          ProtocolVersion
	handle      string
	metadataURI string
	amount      *big.Int
	beneficiary common.Address
	txHash      common.Hash
	timestamp   int64
	note        string
}

// ProjectID returns the numeric project id
func (p *PayEvent) ProjectID() int64 {
	return p.projectID
}

// Pv returns the protocol version that emitted the event
func (p *PayEvent) Pv() ProtocolVersion {
	return p.pv
}

// Handle returns the project handle, which may be empty
func (p *PayEvent) Handle() string {
	return p.handle
}

// MetadataURI returns the content address of the project metadata
func (p *PayEvent) MetadataURI() string {
	return p.metadataURI
}

// Amount returns the payment amount in wei
func (p *PayEvent) Amount() *big.Int {
	return p.amount
}

// Beneficiary returns the address the payment was made on behalf of
func (p *PayEvent) Beneficiary() common.Address {
	return p.beneficiary
}

// TxHash returns the transaction hash of the payment
func (p *PayEvent) TxHash() common.Hash {
	return p.txHash
}

// Timestamp returns the block timestamp of the event in epoch secs
func (p *PayEvent) Timestamp() int64 {
	return p.timestamp
}

// Note returns the optional payment note
func (p *PayEvent) Note() string {
	return p.note
}

// ProjectCreateEventParams contains the fields to pass to NewProjectCreateEvent
type ProjectCreateEventParams struct {
	ProjectID   int64
	Pv          ProtocolVersion
	Handle      string
	MetadataURI string
	Creator     common.Address
	TxHash      common.Hash
	Timestamp   int64
}

// NewProjectCreateEvent is a convenience function to init a ProjectCreateEvent
func NewProjectCreateEvent(params *ProjectCreateEventParams) *ProjectCreateEvent {
	return &ProjectCreateEvent{
		projectID:   params.ProjectID,
		pv:          params.Pv,
		handle:      params.Handle,
		metadataURI: params.MetadataURI,
		creator:     params.Creator,
		txHash:      params.TxHash,
		timestamp:   params.Timestamp,
	}
}

// ProjectCreateEvent represents the creation of a new project as returned
// by the subgraph. Immutable once fetched.
type ProjectCreateEvent struct {
	projectID   int64
	pv          ProtocolVersion
	handle      string
	metadataURI string
	creator     common.Address
	txHash      common.Hash
	timestamp   int64
}

// ProjectID returns the numeric project id
func (p *ProjectCreateEvent) ProjectID() int64 {
	return p.projectID
}

// Pv returns the protocol version that emitted the event
func (p *ProjectCreateEvent) Pv() ProtocolVersion {
	return p.pv
}

// Handle returns the project handle, which may be empty
func (p *ProjectCreateEvent) Handle() string {
	return p.handle
}

// MetadataURI returns the content address of the project metadata
func (p *ProjectCreateEvent) MetadataURI() string {
	return p.metadataURI
}

// Creator returns the address that created the project
func (p *ProjectCreateEvent) Creator() common.Address {
	return p.creator
}

// TxHash returns the transaction hash of the project creation
func (p *ProjectCreateEvent) TxHash() common.Hash {
	return p.txHash
}

// Timestamp returns the block timestamp of the event in epoch secs
func (p *ProjectCreateEvent) Timestamp() int64 {
	return p.timestamp
}
