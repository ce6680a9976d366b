package domain

import "fmt"

// Cart mirrors the server-owned cart resource. The client never mutates it
// directly; every change goes through a version-checked update and the local
// copy is replaced with the server's response.
type Cart struct {
	ID          string     `json:"id"`
	Version     int        `json:"version"`
	CustomerID  string     `json:"customerId,omitempty"`
	AnonymousID string     `json:"anonymousId,omitempty"`
	LineItems   []LineItem `json:"lineItems"`
	TotalPrice  Money      `json:"totalPrice"`
	CartState   string     `json:"cartState,omitempty"`
}

// LineItem is one product-variant entry within a cart.
type LineItem struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"productId"`
	VariantID  int             `json:"variantId,omitempty"`
	Name       LocalizedString `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      Price           `json:"price"`
	TotalPrice Money           `json:"totalPrice"`
}

// Validate checks the shape of a cart response before it is trusted.
func (c *Cart) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("cart: id missing")
	}
	if c.Version < 1 {
		return fmt.Errorf("cart %s: version %d out of range", c.ID, c.Version)
	}
	for i, line := range c.LineItems {
		if line.ID == "" || line.ProductID == "" {
			return fmt.Errorf("cart %s: line item %d missing ids", c.ID, i)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("cart %s: line item %s has quantity %d", c.ID, line.ID, line.Quantity)
		}
	}
	return nil
}

// TotalQuantity sums the quantities of all line items.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.LineItems {
		total += line.Quantity
	}
	return total
}
