package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"playground/internal/domain/service"
	"playground/internal/errors"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*"

	minPasswordLength = 8
	maxPasswordLength = 16
)

type cryptoSecretGenerator struct{}

// NewSecretGenerator returns a generator backed by crypto/rand.
func NewSecretGenerator() service.SecretGenerator {
	return cryptoSecretGenerator{}
}

// VerificationCode returns a uniformly random code in 000000..999999.
func (cryptoSecretGenerator) VerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", errors.Wrap(err, "failed to generate verification code")
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RandomPassword returns 8 to 16 characters with at least one lowercase, uppercase, digit and special character.
func (cryptoSecretGenerator) RandomPassword() (string, error) {
	span, err := randIndex(maxPasswordLength - minPasswordLength + 1)
	if err != nil {
		return "", err
	}
	length := minPasswordLength + span

	classes := []string{lowerChars, upperChars, digitChars, specialChars}
	all := lowerChars + upperChars + digitChars + specialChars

	password := make([]byte, 0, length)
	for _, class := range classes {
		c, err := randChar(class)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}
	for len(password) < length {
		c, err := randChar(all)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	// Fisher-Yates so the guaranteed classes do not sit at fixed positions.
	for i := len(password) - 1; i > 0; i-- {
		j, err := randIndex(i + 1)
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func randChar(set string) (byte, error) {
	i, err := randIndex(len(set))
	if err != nil {
		return 0, err
	}

	return set[i], nil
}

func randIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, errors.Wrap(err, "failed to read random bytes")
	}

	return int(v.Int64()), nil
}
