package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a time-ordered identifier (UUID v7, v4 fallback)
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

func (id ID) String() string { return string(id) }

func (id ID) IsEmpty() bool { return id == "" }

// BatchID identifies one pass of the checker over a sequence of records.
type BatchID ID

func NewBatchID() BatchID { return BatchID(NewID()) }

func (id BatchID) String() string { return ID(id).String() }

// ParseBatchID parses a string into BatchID
func ParseBatchID(s string) (BatchID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("batch ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("invalid batch ID %q: %w", s, err)
	}
	return BatchID(s), nil
}
