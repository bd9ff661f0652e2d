package booking

import "crypto/rand"

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength is the length of the human-readable reservation code.
const CodeLength = 8

// NewCode returns a random 8-character uppercase alphanumeric
// reservation code. Uniqueness is enforced by the database; on a
// collision the admission service retries once with a fresh code.
func NewCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
