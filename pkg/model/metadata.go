// Package model contains the general data models and interfaces for the heartbeat.
package model // import "github.com/juicetools/juicebox-heartbeat/pkg/model"

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NewProjectMetadata is a convenience function to init a ProjectMetadata
func NewProjectMetadata(name string, description string, logoURI string) *ProjectMetadata {
	return &ProjectMetadata{
		name:        name,
		description: description,
		logoURI:     logoURI,
	}
}

// ProjectMetadata is the off-chain project document resolved from a
// content address. All fields are optional. Resolved fresh every run.
type ProjectMetadata struct {
	name        string
	description string
	logoURI     string
}

// Name returns the project name, which may be empty
func (m *ProjectMetadata) Name() string {
	return m.name
}

// Description returns the free-form project description, possibly HTML
func (m *ProjectMetadata) Description() string {
	return m.description
}

// LogoURI returns the raw logo reference from the metadata document
func (m *ProjectMetadata) LogoURI() string {
	return m.logoURI
}

// LogoAddress returns the content address of the project logo, taken as
// the last path segment of the logo reference. Empty when there is no logo.
func (m *ProjectMetadata) LogoAddress() string {
	if m.logoURI == "" {
		return ""
	}
	idx := strings.LastIndex(m.logoURI, "/")
	return m.logoURI[idx+1:]
}

// NewDisplayIdentity is a convenience function to init a DisplayIdentity
func NewDisplayIdentity(address common.Address, name string) *DisplayIdentity {
	return &DisplayIdentity{
		address: address,
		name:    name,
	}
}

// DisplayIdentity is the human readable identity for an address, falling
// back to the address itself when no name resolved.
type DisplayIdentity struct {
	address common.Address
	name    string
}

// Address returns the underlying address
func (d *DisplayIdentity) Address() common.Address {
	return d.address
}

// Name returns the resolved name, or the hex address when none resolved
func (d *DisplayIdentity) Name() string {
	if d.name == "" {
		return d.address.Hex()
	}
	return d.name
}
