// Package plate models a vehicle plate as a value type built once at
// ingestion. Two derivations leave this package: a masked form safe for
// public display and a one-way hash used only for exact-match indexing.
// Neither can be turned back into the full plate.
package plate

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalid = errors.New("invalid plate")

const (
	minLen     = 5
	maxLen     = 8
	maskKeep   = 4
	maskSymbol = "*"
)

// Plate holds a normalized plate (uppercase, no separators). The zero
// value is invalid; construct via Normalize.
type Plate struct {
	normalized string
}

// Normalize uppercases raw, strips spaces and hyphens and validates the
// result. Covers both the old Brazilian format (ABC1234) and Mercosul
// (ABC1D23).
func Normalize(raw string) (Plate, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", "", " ", "").Replace(s)
	if len(s) < minLen || len(s) > maxLen {
		return Plate{}, ErrInvalid
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return Plate{}, ErrInvalid
		}
	}
	return Plate{normalized: s}, nil
}

// Masked keeps the first four characters and replaces the remainder with
// the mask symbol: ABC1D23 -> ABC1***.
func (p Plate) Masked() string {
	if len(p.normalized) <= maskKeep {
		return p.normalized
	}
	return p.normalized[:maskKeep] + strings.Repeat(maskSymbol, len(p.normalized)-maskKeep)
}

// LookupHash returns the base64 SHA-256 of the normalized plate. Fast on
// purpose: this is an index key for exact matching, not a secret that
// needs an adaptive hash.
func (p Plate) LookupHash() string {
	sum := sha256.Sum256([]byte(p.normalized))
	return base64.StdEncoding.EncodeToString(sum[:])
}
