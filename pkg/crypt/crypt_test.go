package crypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	type card struct {
		Number string `json:"number"`
		Holder string `json:"holder"`
	}
	in := card{Number: "4111111111111111", Holder: "Ada Lovelace"}

	sealed, err := EncryptJSON(in)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "4111")

	var out card
	require.NoError(t, DecryptJSON(sealed, &out))
	assert.Equal(t, in, out)
}

func TestTamperedCiphertextFailsAuthentication(t *testing.T) {
	sealed, err := EncryptJSON(map[string]string{"k": "v"})
	require.NoError(t, err)

	// Flip a character in the body of the ciphertext.
	b := []byte(sealed)
	mid := len(b) / 2
	if b[mid] == 'A' {
		b[mid] = 'B'
	} else {
		b[mid] = 'A'
	}

	var out map[string]string
	err = DecryptJSON(string(b), &out)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestGarbageInputIsRejected(t *testing.T) {
	_, err := DecryptBytes("not base64url!!")
	assert.ErrorIs(t, err, ErrDecrypt)
}
