package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"transientmap/internal/models"
	"transientmap/internal/ratelimit"
	"transientmap/internal/session"
)

// Password is the plaintext for every seeded test user.
const Password = "correct-horse-battery"

// Fixtures bundles the in-memory stores the handler tests need, replacing
// the database a persistent service would seed here.
type Fixtures struct {
	Users    *models.Directory
	Sessions *session.Store
	Limiter  *ratelimit.Limiter
}

// NewFixtures returns stores seeded with a single user "alice". Session and
// limiter lifetimes are generous so tests age entries only on purpose.
func NewFixtures(t *testing.T) *Fixtures {
	t.Helper()

	users := models.NewDirectory()
	_, err := users.Register("u-1", "alice", Password)
	require.NoError(t, err)

	return &Fixtures{
		Users:    users,
		Sessions: session.NewStore(1000),
		Limiter:  ratelimit.New(5, 1000),
	}
}
