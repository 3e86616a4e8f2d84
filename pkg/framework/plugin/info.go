// Package plugin describes effect module types and the registry hosts use
// to instantiate them by name.
package plugin

import (
	"errors"

	"github.com/google/uuid"
)

// namespace scopes generated module UIDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("pedalgo.modules"))

// Info contains module metadata
type Info struct {
	ID       string // Unique module identifier (e.g., "com.example.overdrive")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Module category (e.g., "Drive", "Modulation")
}

// UID derives a stable identifier from the module ID.
func (i Info) UID() uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(i.ID))
}

// Validate checks that the metadata can be registered.
func (i Info) Validate() error {
	if i.ID == "" {
		return errors.New("module ID cannot be empty")
	}
	if i.Name == "" {
		return errors.New("module name cannot be empty")
	}
	return nil
}
