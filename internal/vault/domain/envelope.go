package domain

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Envelope is the self-contained record persisted in a vault file.
//
// It holds everything needed to attempt decryption except the master password: the cipher and
// key derivation parameters, the salt, the nonce and the sealed ciphertext. It never carries a
// password or a derived key.
//
// Wire format: standard base64 of the JSON object
//
//	{"alg":"aes-gcm","kdf":"pbkdf2-sha256","iterations":100000,"salt":"<hex>","iv":"<hex>","encrypted":"<hex>"}
type Envelope struct {
	Algorithm  Algorithm
	KDF        KDF
	Iterations int
	Salt       []byte
	IV         []byte
	Ciphertext []byte
}

// envelopeJSON is the JSON shape of an Envelope. Pointers distinguish a missing field from an
// empty one.
type envelopeJSON struct {
	Algorithm  *string `json:"alg"`
	KDF        *string `json:"kdf"`
	Iterations *int    `json:"iterations"`
	Salt       *string `json:"salt"`
	IV         *string `json:"iv"`
	Encrypted  *string `json:"encrypted"`
}

// AAD returns the associated data bound to the ciphertext. Changing any header field after
// encryption makes authentication fail.
func (e *Envelope) AAD() []byte {
	return []byte(strings.Join([]string{
		string(e.Algorithm),
		string(e.KDF),
		strconv.Itoa(e.Iterations),
		hex.EncodeToString(e.Salt),
	}, "|"))
}

// Encode serializes the envelope to its base64 text form.
func (e *Envelope) Encode() (string, error) {
	alg := string(e.Algorithm)
	kdf := string(e.KDF)
	iterations := e.Iterations
	salt := hex.EncodeToString(e.Salt)
	iv := hex.EncodeToString(e.IV)
	encrypted := hex.EncodeToString(e.Ciphertext)

	raw, err := json.Marshal(envelopeJSON{
		Algorithm:  &alg,
		KDF:        &kdf,
		Iterations: &iterations,
		Salt:       &salt,
		IV:         &iv,
		Encrypted:  &encrypted,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal envelope: %w", err)
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeEnvelope parses the base64 text form produced by Encode.
//
// Every field is required. Missing or unparsable fields are reported as ErrMalformedEnvelope;
// no defaults are substituted. Surrounding whitespace is ignored so a trailing newline added by
// an editor does not break a vault file.
func DecodeEnvelope(encoded string) (*Envelope, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", ErrMalformedEnvelope, err)
	}

	var doc envelopeJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrMalformedEnvelope, err)
	}

	if doc.Algorithm == nil || *doc.Algorithm == "" {
		return nil, fmt.Errorf("%w: missing alg", ErrMalformedEnvelope)
	}
	if doc.KDF == nil || *doc.KDF == "" {
		return nil, fmt.Errorf("%w: missing kdf", ErrMalformedEnvelope)
	}
	if doc.Iterations == nil {
		return nil, fmt.Errorf("%w: missing iterations", ErrMalformedEnvelope)
	}
	if *doc.Iterations < MinIterations || *doc.Iterations > MaxIterations {
		return nil, fmt.Errorf(
			"%w: iterations must be between %d and %d, got %d",
			ErrMalformedEnvelope,
			MinIterations,
			MaxIterations,
			*doc.Iterations,
		)
	}

	salt, err := decodeHexField("salt", doc.Salt)
	if err != nil {
		return nil, err
	}
	if len(salt) < MinSaltSize {
		return nil, fmt.Errorf("%w: salt shorter than %d bytes", ErrMalformedEnvelope, MinSaltSize)
	}

	iv, err := decodeHexField("iv", doc.IV)
	if err != nil {
		return nil, err
	}

	ciphertext, err := decodeHexField("encrypted", doc.Encrypted)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		Algorithm:  Algorithm(*doc.Algorithm),
		KDF:        KDF(*doc.KDF),
		Iterations: *doc.Iterations,
		Salt:       salt,
		IV:         iv,
		Ciphertext: ciphertext,
	}, nil
}

func decodeHexField(name string, value *string) ([]byte, error) {
	if value == nil || *value == "" {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedEnvelope, name)
	}
	b, err := hex.DecodeString(*value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hex in %s: %v", ErrMalformedEnvelope, name, err)
	}
	return b, nil
}

// Zero securely overwrites a byte slice with zeros to clear sensitive data from memory.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
