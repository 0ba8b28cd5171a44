package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID string used as the key for every stored entity
// (users, programmes, registrations, answers). ULIDs order by creation time,
// so listing a table roughly follows insertion order.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
