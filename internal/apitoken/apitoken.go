// Package apitoken creates and checks the bearer token guarding the composer API.
//
// Only the argon2id hash of a token is stored in the configuration
// (Webserver.APITokenHash). The plain token is shown once on creation.
package apitoken

import (
	"crypto/rand"
	"errors"
	"strings"

	"github.com/alexedwards/argon2id"
)

// Len is the length of generated tokens, ~190 bits of entropy.
const Len = 32

const (
	maxByte = 255 - (256 % len(alphabet))
	bufLen  = 64
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ErrEmptyToken is returned when an empty token should be hashed.
var ErrEmptyToken = errors.New("api token can not be empty")

// Generate returns a random token of Len alphanumeric characters.
func Generate() (string, error) {
	out := make([]byte, 0, Len)
	buf := make([]byte, bufLen)

	for len(out) < Len {
		if _, err := rand.Read(buf); err != nil {
			return "", err //nolint:wrapcheck
		}

		for _, b := range buf {
			// values above maxByte would bias the modulo
			if int(b) > maxByte {
				continue
			}

			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == Len {
				break
			}
		}
	}

	return string(out), nil
}

// Hash returns the argon2id hash of token.
func Hash(token string) (string, error) {
	if token == "" {
		return "", ErrEmptyToken
	}

	return argon2id.CreateHash(token, argon2id.DefaultParams) //nolint:wrapcheck
}

// New generates a token and its hash.
func New() (token, hash string, err error) {
	if token, err = Generate(); err != nil {
		return "", "", err
	}

	if hash, err = Hash(token); err != nil {
		return "", "", err
	}

	return token, hash, nil
}

// Verify reports whether token matches hash. Malformed hashes never match.
func Verify(token, hash string) bool {
	if token == "" || hash == "" {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(token, hash)
	if err != nil {
		return false
	}

	return match
}

// FromHeader extracts the token of a "Bearer <token>" authorization header.
func FromHeader(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}
