// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

var ErrMalformedHash = errors.New("malformed password hash")

// PasswordParams are the argon2id costs applied to newly hashed
// passwords. Stored hashes carry their own costs and stay verifiable
// after these change.
type PasswordParams struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

var DefaultPasswordParams = PasswordParams{
	MemoryKiB:   64 * 1024,
	Iterations:  1,
	Parallelism: 4,
	SaltLen:     16,
	KeyLen:      32,
}

func (p PasswordParams) withDefaults() PasswordParams {
	if p.MemoryKiB == 0 {
		p.MemoryKiB = DefaultPasswordParams.MemoryKiB
	}
	if p.Iterations == 0 {
		p.Iterations = DefaultPasswordParams.Iterations
	}
	if p.Parallelism == 0 {
		p.Parallelism = DefaultPasswordParams.Parallelism
	}
	if p.SaltLen == 0 {
		p.SaltLen = DefaultPasswordParams.SaltLen
	}
	if p.KeyLen == 0 {
		p.KeyLen = DefaultPasswordParams.KeyLen
	}
	return p
}

// PasswordMatch is the outcome of a verification. Rehash is set when the
// password matched a hash made with different costs.
type PasswordMatch struct {
	OK     bool
	Rehash string
}

// PasswordHasher hashes account passwords into PHC strings of the form
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>.
type PasswordHasher struct {
	params PasswordParams
	decoy  func() string
}

func NewPasswordHasher(params PasswordParams) *PasswordHasher {
	h := &PasswordHasher{params: params.withDefaults()}
	h.decoy = sync.OnceValue(func() string {
		encoded, err := h.Hash("no such account")
		if err != nil {
			return ""
		}
		return encoded
	})
	return h
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	return phcHash{
		params: h.params,
		salt:   salt,
		key:    h.params.derive(password, salt),
	}.String(), nil
}

func (h *PasswordHasher) Verify(password, encoded string) (PasswordMatch, error) {
	stored, err := parsePHC(encoded)
	if err != nil {
		return PasswordMatch{}, err
	}

	candidate := stored.params.derive(password, stored.salt)
	if subtle.ConstantTimeCompare(stored.key, candidate) != 1 {
		return PasswordMatch{}, nil
	}

	match := PasswordMatch{OK: true}
	if stored.params != h.params {
		// a failed upgrade must not fail the login
		if upgraded, err := h.Hash(password); err == nil {
			match.Rehash = upgraded
		}
	}
	return match, nil
}

// VerifyAccount checks password against an account's stored hash. A nil
// or empty hash means no such account: one decoy hash is still verified
// so the response time matches a wrong password.
func (h *PasswordHasher) VerifyAccount(password string, stored *string) (PasswordMatch, error) {
	if stored == nil || *stored == "" {
		_, _ = h.Verify(password, h.decoy()) //nolint:errcheck // timing only
		return PasswordMatch{}, nil
	}
	return h.Verify(password, *stored)
}

func (p PasswordParams) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.Iterations, p.MemoryKiB, p.Parallelism, p.KeyLen)
}

type phcHash struct {
	params PasswordParams
	salt   []byte
	key    []byte
}

func (p phcHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.params.MemoryKiB,
		p.params.Iterations,
		p.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(p.salt),
		base64.RawStdEncoding.EncodeToString(p.key),
	)
}

func parsePHC(encoded string) (phcHash, error) {
	var out phcHash

	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" {
		return out, fmt.Errorf("%w: want 5 sections", ErrMalformedHash)
	}
	if fields[1] != "argon2id" {
		return out, fmt.Errorf("%w: algorithm %q", ErrMalformedHash, fields[1])
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil || version != argon2.Version {
		return out, fmt.Errorf("%w: version %q", ErrMalformedHash, fields[2])
	}

	p := &out.params
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Iterations, &p.Parallelism); err != nil {
		return out, fmt.Errorf("%w: costs %q", ErrMalformedHash, fields[3])
	}
	if p.MemoryKiB == 0 || p.Iterations == 0 || p.Parallelism == 0 {
		return out, fmt.Errorf("%w: zero cost in %q", ErrMalformedHash, fields[3])
	}

	var err error
	if out.salt, err = base64.RawStdEncoding.DecodeString(fields[4]); err != nil || len(out.salt) == 0 {
		return out, fmt.Errorf("%w: salt", ErrMalformedHash)
	}
	if out.key, err = base64.RawStdEncoding.DecodeString(fields[5]); err != nil || len(out.key) == 0 {
		return out, fmt.Errorf("%w: key", ErrMalformedHash)
	}

	//nolint:gosec // lengths are tens of bytes
	p.SaltLen, p.KeyLen = uint32(len(out.salt)), uint32(len(out.key))
	return out, nil
}
