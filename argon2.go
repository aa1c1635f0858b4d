package fittrack

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Memory is expressed in KiB as the argon2 package
// expects, so 256 MiB total.
const (
	argonTime    uint32 = 3
	argonMemory  uint32 = 256 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	argonSaltLen        = 16
)

// HashPassword will generate an Argon2id password hash in PHC string format.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate salt")
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// ComparePasswordAndHash will validate the given cleartext password
// against a PHC encoded Argon2id hash. The stored parameters are used
// for derivation so hashes survive future parameter changes.
func ComparePasswordAndHash(password, hash string) error {
	salt, key, memory, time, threads, err := decodeArgon2Hash(hash)
	if err != nil {
		return err
	}

	derived := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(key)))

	if subtle.ConstantTimeCompare(key, derived) != 1 {
		return ErrInvalidCredentials
	}

	return nil
}

func decodeArgon2Hash(hash string) (salt, key []byte, memory, time uint32, threads uint8, err error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, goerrors.New("malformed password hash", goerrors.CategoryInternal)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, goerrors.Wrap(err, goerrors.CategoryInternal, "malformed password hash version")
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, goerrors.New("unsupported argon2 version", goerrors.CategoryInternal)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, goerrors.Wrap(err, goerrors.CategoryInternal, "malformed password hash parameters")
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, 0, 0, 0, goerrors.Wrap(err, goerrors.CategoryInternal, "malformed password hash salt")
	}

	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, nil, 0, 0, 0, goerrors.Wrap(err, goerrors.CategoryInternal, "malformed password hash key")
	}

	return salt, key, memory, time, threads, nil
}

// RandomPassword generates a throwaway password for the admin panel's
// password generator.
func RandomPassword() string {
	return uuid.New().String()
}

// RandomPasswordHash is a hashed temporary password for accounts that
// have not chosen a credential yet. Hashing only fails when the system
// randomness source does, so a few retries are plenty; past that the
// process has bigger problems.
func RandomPasswordHash() string {
	var err error
	for i := 0; i < 3; i++ {
		var h string
		if h, err = HashPassword(RandomPassword()); err == nil {
			return h
		}
	}
	panic(fmt.Sprintf("unable to hash a generated password: %v", err))
}
