package middleware

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/aretw0/blockscript/pkg/ports"
)

var (
	// ErrNotEncrypted is returned by Load when the stored document was
	// written without the encryption middleware.
	ErrNotEncrypted = errors.New("document is not encrypted")
	// ErrNoMatchingKey is returned by Load when no configured key opens the
	// stored document.
	ErrNoMatchingKey = errors.New("no configured key opens the document")
)

// envelopePrefix marks encrypted documents. Nonce and sealed document follow.
var envelopePrefix = []byte("BSENC1\x00")

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey seals every saved document. Must be 32 bytes (AES-256).
	ActiveKey []byte

	// FallbackKeys are tried in order after ActiveKey on Load, so documents
	// sealed before a key rotation stay readable.
	FallbackKeys [][]byte
}

// keyring holds one AEAD per configured key; the first one seals.
type keyring []cipher.AEAD

func newKeyring(cfg EncryptionConfig) (keyring, error) {
	keys := append([][]byte{cfg.ActiveKey}, cfg.FallbackKeys...)
	ring := make(keyring, 0, len(keys))
	for i, key := range keys {
		if len(key) != 32 {
			return nil, fmt.Errorf("key %d is %d bytes, want 32", i, len(key))
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, err
		}
		ring = append(ring, aead)
	}
	return ring, nil
}

func (r keyring) seal(doc []byte) ([]byte, error) {
	aead := r[0]
	out := make([]byte, len(envelopePrefix)+aead.NonceSize(), len(envelopePrefix)+aead.NonceSize()+len(doc)+aead.Overhead())
	copy(out, envelopePrefix)
	nonce := out[len(envelopePrefix):]
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(out, nonce, doc, nil), nil
}

func (r keyring) open(envelope []byte) ([]byte, error) {
	if !bytes.HasPrefix(envelope, envelopePrefix) {
		return nil, ErrNotEncrypted
	}
	body := envelope[len(envelopePrefix):]
	for _, aead := range r {
		n := aead.NonceSize()
		if len(body) < n {
			return nil, errors.New("envelope too short")
		}
		if doc, err := aead.Open(nil, body[:n], body[n:], nil); err == nil {
			return doc, nil
		}
	}
	return nil, ErrNoMatchingKey
}

type encryptionMiddleware struct {
	next ports.ScriptStore
	keys keyring
}

// NewEncryptionMiddleware creates a middleware that seals script documents
// with AES-GCM. Stats and timestamps stay readable so listings and metrics
// work without the key. It panics when a key is not 32 bytes long.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	keys, err := newKeyring(config)
	if err != nil {
		panic("encryption middleware: " + err.Error())
	}
	return func(next ports.ScriptStore) ports.ScriptStore {
		return &encryptionMiddleware{next: next, keys: keys}
	}
}

func (m *encryptionMiddleware) Save(ctx context.Context, rec ports.ScriptRecord) error {
	sealed, err := m.keys.seal(rec.Document)
	if err != nil {
		return fmt.Errorf("failed to encrypt script %s: %w", rec.ID, err)
	}
	rec.Document = sealed
	return m.next.Save(ctx, rec)
}

func (m *encryptionMiddleware) Load(ctx context.Context, id string) (ports.ScriptRecord, error) {
	rec, err := m.next.Load(ctx, id)
	if err != nil {
		return rec, err
	}
	doc, err := m.keys.open(rec.Document)
	if err != nil {
		return ports.ScriptRecord{}, fmt.Errorf("script %s: %w", id, err)
	}
	rec.Document = doc
	return rec, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
