// Package id generates opaque identifiers for play sessions.
package id

import (
	crand "crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a 26-character lowercase base32 encoding of a random UUIDv4.
func NewID() (string, error) {
	return newIDFrom(crand.Reader)
}

func newIDFrom(r io.Reader) (string, error) {
	u, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return "", fmt.Errorf("read random id: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(u[:])), nil
}
