package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenesisLength(t *testing.T) {
	g := Genesis()
	assert.Len(t, g, DigestLength)
	for _, r := range g {
		assert.Equal(t, byte('0'), byte(r))
	}
}

func TestComputeDeterministic(t *testing.T) {
	h1 := Compute(Genesis(), []byte(`{"a":1}`))
	h2 := Compute(Genesis(), []byte(`{"a":1}`))
	assert.Equal(t, h1, h2, "Compute must be deterministic for identical inputs")
	assert.Len(t, h1, DigestLength)
}

func TestComputeSensitiveToPrevDigest(t *testing.T) {
	body := []byte(`{"a":1}`)
	h1 := Compute(Genesis(), body)
	h2 := Compute(h1, body)
	assert.NotEqual(t, h1, h2, "Compute must depend on prevDigest")
}

func TestComputeSensitiveToBody(t *testing.T) {
	h1 := Compute(Genesis(), []byte(`{"a":1}`))
	h2 := Compute(Genesis(), []byte(`{"a":2}`))
	assert.NotEqual(t, h1, h2, "Compute must depend on canonicalBytes")
}
