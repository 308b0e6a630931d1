package authcookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// Errors.
var (
	ErrNotFound  = errors.New("authcookie: not found")
	ErrBadSecret = errors.New("authcookie: secret must be 32+ bytes")
	ErrDecrypt   = errors.New("authcookie: decryption failed")
	ErrExpired   = errors.New("authcookie: pending authorization expired")
)

// DefaultName is the cookie name used unless WithName is given.
const DefaultName = "oauth_pending"

// DefaultTTL bounds how long a user may take at the provider.
const DefaultTTL = 10 * time.Minute

// Pending is what a login handler must remember until the callback.
type Pending struct {
	ExpiresAt    time.Time `json:"exp"`
	Provider     string    `json:"provider"`
	State        string    `json:"state"`
	CodeVerifier string    `json:"verifier,omitempty"`
	ReturnTo     string    `json:"return_to,omitempty"`
}

// Store keeps one Pending record in an encrypted cookie.
type Store struct {
	now      func() time.Time
	key      [32]byte
	name     string
	path     string
	domain   string
	ttl      time.Duration
	secure   bool
	sameSite http.SameSite
}

// Option configures the Store.
type Option func(*Store)

// New creates a Store. The secret must be at least 32 bytes.
func New(secret string, opts ...Option) (*Store, error) {
	if len(secret) < 32 {
		return nil, ErrBadSecret
	}
	s := &Store{
		key:  sha256.Sum256([]byte(secret)),
		name: DefaultName,
		path: "/",
		ttl:  DefaultTTL,
		now:  time.Now,
		// Lax lets the cookie ride along on the provider's top-level redirect.
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// WithName sets the cookie name.
func WithName(name string) Option {
	return func(s *Store) { s.name = name }
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(s *Store) { s.path = path }
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(s *Store) { s.domain = domain }
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(s *Store) { s.secure = secure }
}

// WithTTL sets how long a pending authorization stays valid.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Save writes p to the response. ExpiresAt is set from the TTL.
func (s *Store) Save(w http.ResponseWriter, p Pending) error {
	p.ExpiresAt = s.now().Add(s.ttl).UTC()

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	sealed, err := s.encrypt(data)
	if err != nil {
		return err
	}

	http.SetCookie(w, s.cookie(base64.RawURLEncoding.EncodeToString(sealed), int(s.ttl.Seconds())))
	return nil
}

// Load reads the pending authorization from the request.
func (s *Store) Load(r *http.Request) (Pending, error) {
	c, err := r.Cookie(s.name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return Pending{}, ErrNotFound
		}
		return Pending{}, err
	}

	sealed, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return Pending{}, ErrDecrypt
	}
	data, err := s.decrypt(sealed)
	if err != nil {
		return Pending{}, ErrDecrypt
	}

	var p Pending
	if err := json.Unmarshal(data, &p); err != nil {
		return Pending{}, ErrDecrypt
	}
	if !s.now().Before(p.ExpiresAt) {
		return Pending{}, ErrExpired
	}
	return p, nil
}

// Clear removes the cookie. Call it on every callback, successful or not,
// so a state token is never accepted twice.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", -1))
}

func (s *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     s.path,
		Domain:   s.domain,
		MaxAge:   maxAge,
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: s.sameSite,
	}
}

// encrypt uses AES-GCM with a random nonce prefix.
func (s *Store) encrypt(plaintext []byte) ([]byte, error) {
	aead, err := s.aead()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	// The cookie name is bound as additional data so values cannot be swapped between stores.
	return aead.Seal(nonce, nonce, plaintext, []byte(s.name)), nil
}

func (s *Store) decrypt(sealed []byte) ([]byte, error) {
	aead, err := s.aead()
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, []byte(s.name))
}

func (s *Store) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
