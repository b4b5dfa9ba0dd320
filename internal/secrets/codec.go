package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/diewo77/go-crm/internal/apperr"
)

// KeySize is the required codec key length (AES-256).
const KeySize = 32

// Codec encrypts and decrypts PII string fields with AES-256-GCM.
// Ciphertext is base64(nonce || sealed) so it can live in ordinary
// string columns. Empty input passes through unchanged: absence is
// never encrypted.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec builds a codec from a raw 32-byte key.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Codec{aead: aead}, nil
}

// NewCodecFromEnv builds a codec from a base64-encoded key as carried
// in CRM_ENCRYPTION_KEY. When the key is empty a throwaway key is
// generated and a warning logged: data written with it is unreadable
// after restart, so this is an error condition for any production
// deployment, not silent success.
func NewCodecFromEnv(encodedKey string) (*Codec, error) {
	if encodedKey == "" {
		key := make([]byte, KeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		log.Warn().Msg("CRM_ENCRYPTION_KEY not set; generated a throwaway key, encrypted data will not survive a restart")
		return NewCodec(key)
	}
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("decode CRM_ENCRYPTION_KEY: %w", err)
	}
	return NewCodec(key)
}

// Encrypt seals plain under a fresh random nonce. Empty input is
// returned as-is.
func (c *Codec) Encrypt(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Ciphertext produced under a different key
// (or tampered with) fails authentication and surfaces as a
// DataIntegrity error; callers must treat that as fatal for the read.
func (c *Codec) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", apperr.DataIntegrity(fmt.Errorf("malformed ciphertext: %w", err))
	}
	ns := c.aead.NonceSize()
	if len(raw) < ns {
		return "", apperr.DataIntegrity(fmt.Errorf("ciphertext shorter than nonce"))
	}
	plain, err := c.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", apperr.DataIntegrity(fmt.Errorf("decryption failed, wrong or rotated key: %w", err))
	}
	return string(plain), nil
}
