package util

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"net/http"
	"strings"
)

// ValidateMimeType sniffs the real content type of a stream.
// allowedTypes entries may be prefixes ("video/") or full types.
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

const randomCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRandomString returns n random lowercase alphanumerics, used
// to de-collide uploaded file names.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(randomCharset)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = randomCharset[0]
			continue
		}
		b[i] = randomCharset[idx.Int64()]
	}
	return string(b)
}
