// Package password hashes credentials with Argon2id.
package password

import (
	"github.com/alexedwards/argon2id"
)

// DefaultParams is the production cost profile.
var DefaultParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

type Hasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) (bool, error)
}

type Argon2idHasher struct {
	params *argon2id.Params
	pepper string
}

func NewArgon2idHasher(params *argon2id.Params, pepper string) *Argon2idHasher {
	if params == nil {
		params = DefaultParams
	}
	return &Argon2idHasher{params: params, pepper: pepper}
}

// Hash returns a PHC encoded hash with a fresh random salt.
func (h *Argon2idHasher) Hash(plain string) (string, error) {
	return argon2id.CreateHash(plain+h.pepper, h.params)
}

// Verify reports a mismatch as (false, nil); a hash that cannot be decoded is an error.
func (h *Argon2idHasher) Verify(hash, plain string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plain+h.pepper, hash)
}
