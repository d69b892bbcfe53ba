package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/marvel-dashboard/internal/ports"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const envelopePrefix = "xc1"

var (
	ErrEmptySecret      = errors.New("token cipher secret is empty")
	ErrInvalidEnvelope  = errors.New("token cipher: invalid envelope")
	errInvalidKDFConfig = errors.New("token cipher: invalid key derivation configuration")
)

// KDFConfig holds the Argon2id parameters used to turn the configured secret
// into an XChaCha20-Poly1305 key.
type KDFConfig struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
}

func DefaultKDFConfig() KDFConfig {
	return KDFConfig{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 4,
		SaltLength:  16,
	}
}

func (c KDFConfig) validate() error {
	if c.Memory < 8*1024 {
		return fmt.Errorf("%w: memory must be at least 8192", errInvalidKDFConfig)
	}
	if c.Iterations == 0 {
		return fmt.Errorf("%w: iterations must be greater than zero", errInvalidKDFConfig)
	}
	if c.Parallelism == 0 {
		return fmt.Errorf("%w: parallelism must be greater than zero", errInvalidKDFConfig)
	}
	if c.SaltLength < 8 {
		return fmt.Errorf("%w: salt length must be at least 8 bytes", errInvalidKDFConfig)
	}
	return nil
}

// Cipher encrypts tokens into "xc1.<salt>.<nonce>.<ciphertext>" envelopes,
// each part base64url encoded. Every envelope uses a fresh salt and nonce.
type Cipher struct {
	secret []byte
	kdf    KDFConfig
}

var _ ports.TokenCipher = (*Cipher)(nil)

func NewCipher(secret string, kdf KDFConfig) (*Cipher, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}
	if err := kdf.validate(); err != nil {
		return nil, err
	}

	return &Cipher{secret: []byte(secret), kdf: kdf}, nil
}

func (c *Cipher) Encrypt(plaintext string) (string, error) {
	salt := make([]byte, c.kdf.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	aead, err := chacha20poly1305.NewX(c.deriveKey(salt))
	if err != nil {
		return "", fmt.Errorf("create aead: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, []byte(plaintext), []byte(envelopePrefix))

	return strings.Join([]string{
		envelopePrefix,
		encode(salt),
		encode(nonce),
		encode(sealed),
	}, "."), nil
}

func (c *Cipher) Decrypt(envelope string) (string, error) {
	parts := strings.Split(envelope, ".")
	if len(parts) != 4 || parts[0] != envelopePrefix {
		return "", ErrInvalidEnvelope
	}

	salt, err := decode(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: salt: %v", ErrInvalidEnvelope, err)
	}
	nonce, err := decode(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: nonce: %v", ErrInvalidEnvelope, err)
	}
	sealed, err := decode(parts[3])
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext: %v", ErrInvalidEnvelope, err)
	}

	aead, err := chacha20poly1305.NewX(c.deriveKey(salt))
	if err != nil {
		return "", fmt.Errorf("create aead: %w", err)
	}
	if len(nonce) != aead.NonceSize() {
		return "", fmt.Errorf("%w: nonce length %d", ErrInvalidEnvelope, len(nonce))
	}

	plaintext, err := aead.Open(nil, nonce, sealed, []byte(envelopePrefix))
	if err != nil {
		return "", fmt.Errorf("decrypt token: %w", err)
	}

	return string(plaintext), nil
}

func (c *Cipher) deriveKey(salt []byte) []byte {
	return argon2.IDKey(c.secret, salt, c.kdf.Iterations, c.kdf.Memory, c.kdf.Parallelism, chacha20poly1305.KeySize)
}

func encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func decode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
