package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCertificateNumber(t *testing.T) {
	number := NewCertificateNumber()

	parts := strings.Split(number, "-")
	assert.Len(t, parts, 3)
	assert.Equal(t, "CERT", parts[0])
	assert.Len(t, parts[2], 8)
}

func TestNewCertificateNumberUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		n := NewCertificateNumber()
		if _, ok := seen[n]; ok {
			t.Fatalf("duplicate certificate number: %s", n)
		}
		seen[n] = struct{}{}
	}
}
