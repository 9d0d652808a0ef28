package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// PageID identifies one load of the predictor page.
	PageID ID
	// VisitorID identifies a browser across page loads (theme persistence).
	VisitorID ID
	// ChartID is the DOM id of a rendered chart.
	ChartID ID
)

func (id PageID) String() string    { return ID(id).String() }
func (id VisitorID) String() string { return ID(id).String() }
func (id ChartID) String() string   { return ID(id).String() }

func (id VisitorID) IsEmpty() bool { return id == "" }

func NewPageID() PageID       { return PageID(NewID()) }
func NewVisitorID() VisitorID { return VisitorID(uuid.New().String()) }

// NewChartID returns an id usable as an HTML element id
func NewChartID(prefix string) ChartID {
	return ChartID(prefix + "-" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}

// ParsePageID parses a string into PageID
func ParsePageID(s string) (PageID, error) {
	id, err := parseUUID("page", s)
	return PageID(id), err
}

// ParseVisitorID parses a string into VisitorID
func ParseVisitorID(s string) (VisitorID, error) {
	id, err := parseUUID("visitor", s)
	return VisitorID(id), err
}

func parseUUID(kind, s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%s ID cannot be empty", kind)
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid %s ID %q: %w", kind, s, err)
	}
	return ID(parsed.String()), nil
}
