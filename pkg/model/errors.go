// Package model contains the general data models and interfaces for the heartbeat.
package model // import "github.com/juicetools/juicebox-heartbeat/pkg/model"

import (
	"fmt"
)

// FetchError is a subgraph query transport or parse failure. It aborts
// processing for the owning category only.
type FetchError struct {
	Category EventCategory
	Err      error
}

// NewFetchError creates a FetchError for the category
func NewFetchError(category EventCategory, err error) *FetchError {
	return &FetchError{Category: category, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Error fetching %v events: err: %v", e.Category, e.Err)
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ResolutionError is a metadata or identity lookup failure. It degrades
// the affected event's enrichment, never aborts it.
type ResolutionError struct {
	URI string
	Err error
}

// NewResolutionError creates a ResolutionError for the uri
func NewResolutionError(uri string, err error) *ResolutionError {
	return &ResolutionError{URI: uri, Err: err}
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("Error resolving %v: err: %v", e.URI, e.Err)
}

// Unwrap returns the underlying error
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// DeliveryError is a notification send failure for a single destination.
// It blocks checkpoint advancement for the event and is retried
// implicitly on the next run.
type DeliveryError struct {
	Destination string
	Err         error
}

// NewDeliveryError creates a DeliveryError for the destination
func NewDeliveryError(destination string, err error) *DeliveryError {
	return &DeliveryError{Destination: destination, Err: err}
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("Error delivering to %v: err: %v", e.Destination, e.Err)
}

// Unwrap returns the underlying error
func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// PersistenceError is a checkpoint write failure. It is the only fatal
// condition for a run: losing the new checkpoint risks duplicate
// notifications on every future run.
type PersistenceError struct {
	Err error
}

// NewPersistenceError creates a PersistenceError
func NewPersistenceError(err error) *PersistenceError {
	return &PersistenceError{Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("Error persisting checkpoints: err: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}
