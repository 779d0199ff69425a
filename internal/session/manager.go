package session

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"sync"
	"time"

	"storefront-gateway/internal/cart"
	"storefront-gateway/internal/checkout"
)

const defaultTTL = 3 * time.Hour

// Options tunes session issuance.
type Options struct {
	TTL         time.Duration
	Currency    string
	MirrorCarts bool
}

// Manager issues session tokens and resolves them to their Session.
// Expired sessions are purged on touch.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	orders   checkout.OrderPlacer
	carts    cart.RemoteCarts
	logger   *log.Logger
	ttl      time.Duration
	currency string
	mirror   bool
}

func NewManager(orders checkout.OrderPlacer, carts cart.RemoteCarts, logger *log.Logger, opts Options) *Manager {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	currency := opts.Currency
	if currency == "" {
		currency = "USD"
	}
	return &Manager{
		sessions: make(map[string]*Session),
		orders:   orders,
		carts:    carts,
		logger:   logger,
		ttl:      ttl,
		currency: currency,
		mirror:   opts.MirrorCarts,
	}
}

// Issue creates a session with an empty cart and returns its token.
func (m *Manager) Issue() (string, error) {
	token, err := randomToken()
	if err != nil {
		return "", err
	}
	sess := &Session{
		cart:      cart.New(m.currency),
		orders:    m.orders,
		expiresAt: time.Now().Add(m.ttl),
	}
	if m.mirror && m.carts != nil {
		sess.mirror = cart.NewMirror(m.carts, m.logger)
	}
	m.mu.Lock()
	m.sessions[token] = sess
	m.mu.Unlock()
	return token, nil
}

// Get resolves a token to its session.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.RLock()
	sess, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(sess.expiresAt) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return nil, false
	}
	return sess, true
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
