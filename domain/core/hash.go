package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

func (h Hash) String() string { return string(h) }

func (h Hash) IsEmpty() bool { return h == "" }

// TableHash fingerprints a rendered result table so repeated runs can be
// compared by value.
type TableHash Hash

func (h TableHash) String() string { return Hash(h).String() }

// ComputeTableHash hashes rows of cells in order. Cell and row boundaries are
// part of the input, so {"ab"} and {"a","b"} hash differently.
func ComputeTableHash(rows [][]string) TableHash {
	var data strings.Builder
	for _, row := range rows {
		for _, cell := range row {
			data.WriteString(cell)
			data.WriteByte(0x1f)
		}
		data.WriteByte(0x1e)
	}
	return TableHash(NewHash([]byte(data.String())))
}
