package cart

import (
	"context"
	"log"

	"storefront-gateway/internal/commerce"
	"storefront-gateway/internal/domain"
)

// RemoteCarts is the slice of the commerce client the mirror needs.
type RemoteCarts interface {
	CreateCart(ctx context.Context) (*commerce.Cart, error)
	AddLineItem(ctx context.Context, cartID, variantID string, quantity int) (*commerce.Cart, error)
	UpdateLineItem(ctx context.Context, cartID, lineItemID string, quantity int) (*commerce.Cart, error)
	RemoveLineItem(ctx context.Context, cartID, lineItemID string) (*commerce.Cart, error)
}

// Mirror replays local cart mutations to the upstream cart, best-effort.
// The local aggregate stays authoritative: a mirror failure is logged and
// never fails or rolls back the local mutation.
type Mirror struct {
	api    RemoteCarts
	logger *log.Logger

	cartID string
	// local line-item id -> upstream line-item id
	lineIDs map[string]string
}

func NewMirror(api RemoteCarts, logger *log.Logger) *Mirror {
	return &Mirror{
		api:     api,
		logger:  logger,
		lineIDs: make(map[string]string),
	}
}

// Upsert pushes the line's current state upstream: an update when the line
// is already mirrored, otherwise an add.
func (m *Mirror) Upsert(ctx context.Context, line domain.LineItem) {
	if !m.ensureCart(ctx) {
		return
	}
	if remoteID, ok := m.lineIDs[line.ID]; ok {
		if _, err := m.api.UpdateLineItem(ctx, m.cartID, remoteID, line.Quantity); err != nil {
			m.logger.Printf("cart mirror: update line %s: %v", remoteID, err)
		}
		return
	}
	snapshot, err := m.api.AddLineItem(ctx, m.cartID, line.VariantID, line.Quantity)
	if err != nil {
		m.logger.Printf("cart mirror: add line: %v", err)
		return
	}
	for _, item := range snapshot.Items {
		if item.VariantID == line.VariantID {
			m.lineIDs[line.ID] = item.ID
			return
		}
	}
}

// Removed drops the mirrored counterpart of a deleted local line.
func (m *Mirror) Removed(ctx context.Context, lineItemID string) {
	remoteID, ok := m.lineIDs[lineItemID]
	if !ok || m.cartID == "" {
		return
	}
	delete(m.lineIDs, lineItemID)
	if _, err := m.api.RemoveLineItem(ctx, m.cartID, remoteID); err != nil {
		m.logger.Printf("cart mirror: remove line %s: %v", remoteID, err)
	}
}

// Cleared drops every mirrored line.
func (m *Mirror) Cleared(ctx context.Context) {
	for localID := range m.lineIDs {
		m.Removed(ctx, localID)
	}
}

func (m *Mirror) ensureCart(ctx context.Context) bool {
	if m.cartID != "" {
		return true
	}
	snapshot, err := m.api.CreateCart(ctx)
	if err != nil {
		m.logger.Printf("cart mirror: create cart: %v", err)
		return false
	}
	m.cartID = snapshot.ID
	return true
}
