package credentials

import (
	"crypto/subtle"
	"strings"

	"rbac-chatbot-be/internal/entity"
	"rbac-chatbot-be/internal/pkg/apperrors"

	"golang.org/x/crypto/bcrypt"
)

// Store resolves usernames to identities and verifies secrets. Injected so
// tests can substitute fixtures without touching global state.
type Store interface {
	Lookup(username string) (*entity.Identity, bool)
	Authenticate(username, secret string) (*entity.Identity, error)
}

// User is one row of the static credential table.
type User struct {
	Username string
	Secret   string
	Role     entity.Role
}

// StaticStore is the credential table loaded from config at process start.
// Immutable after construction.
type StaticStore struct {
	users map[string]User
}

func NewStaticStore(users []User) *StaticStore {
	table := make(map[string]User, len(users))
	for _, u := range users {
		table[u.Username] = u
	}
	return &StaticStore{users: table}
}

func (s *StaticStore) Lookup(username string) (*entity.Identity, bool) {
	u, ok := s.users[username]
	if !ok {
		return nil, false
	}
	return &entity.Identity{Username: u.Username, Role: u.Role}, true
}

// Authenticate verifies username/secret against the table. Configured secrets
// may be bcrypt digests or plain values; plain values are compared in
// constant time. Failures are uniformly ErrUnauthorized so the response never
// reveals whether the username exists.
func (s *StaticStore) Authenticate(username, secret string) (*entity.Identity, error) {
	u, ok := s.users[username]
	if !ok {
		// Burn a comparison anyway to keep timing consistent.
		bcrypt.CompareHashAndPassword([]byte(dummyDigest), []byte(secret))
		return nil, apperrors.ErrUnauthorized
	}

	if isBcryptDigest(u.Secret) {
		if err := bcrypt.CompareHashAndPassword([]byte(u.Secret), []byte(secret)); err != nil {
			return nil, apperrors.ErrUnauthorized
		}
	} else if subtle.ConstantTimeCompare([]byte(u.Secret), []byte(secret)) != 1 {
		return nil, apperrors.ErrUnauthorized
	}

	return &entity.Identity{Username: u.Username, Role: u.Role}, nil
}

// dummyDigest is a digest of nothing in particular, used to equalize timing
// for unknown usernames.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func isBcryptDigest(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
