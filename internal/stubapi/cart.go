package stubapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-client/internal/domain"
)

func (s *Server) activeCartHandler(c *gin.Context) {
	meta := identity(c)
	s.mu.Lock()
	cartID, ok := s.activeCarts[ownerKey(meta)]
	var cart *domain.Cart
	if ok {
		cart = s.carts[cartID]
	}
	s.mu.Unlock()
	if cart == nil {
		s.fail(c, http.StatusNotFound, "ResourceNotFound", "No active cart exists.", "")
		return
	}
	c.JSON(http.StatusOK, cart)
}

type cartDraft struct {
	Currency string `json:"currency"`
	Country  string `json:"country"`
}

func (s *Server) createCartHandler(c *gin.Context) {
	meta := identity(c)
	var draft cartDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		s.fail(c, http.StatusBadRequest, "InvalidJsonInput", "Request body does not contain valid JSON.", "")
		return
	}
	if draft.Currency == "" {
		s.fail(c, http.StatusBadRequest, "RequiredField", "currency: Missing required value", "currency")
		return
	}

	cart := &domain.Cart{
		ID:          uuid.NewString(),
		Version:     1,
		CustomerID:  meta.customerID,
		AnonymousID: meta.anonymousID,
		LineItems:   []domain.LineItem{},
		TotalPrice:  domain.Money{Type: "centPrecision", CurrencyCode: draft.Currency, FractionDigits: 2},
		CartState:   "Active",
	}
	s.mu.Lock()
	s.carts[cart.ID] = cart
	s.activeCarts[ownerKey(meta)] = cart.ID
	s.mu.Unlock()

	c.JSON(http.StatusCreated, cart)
}

type cartUpdateRequest struct {
	Version int          `json:"version"`
	Actions []cartAction `json:"actions"`
}

type cartAction struct {
	Action     string `json:"action"`
	ProductID  string `json:"productId"`
	VariantID  int    `json:"variantId"`
	LineItemID string `json:"lineItemId"`
	Quantity   int    `json:"quantity"`
}

func (s *Server) updateCartHandler(c *gin.Context) {
	meta := identity(c)
	cartID := c.Param("id")
	var req cartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, "InvalidJsonInput", "Request body does not contain valid JSON.", "")
		return
	}
	if len(req.Actions) == 0 {
		s.fail(c, http.StatusBadRequest, "InvalidInput", "actions: Missing required value", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++

	cart, ok := s.carts[cartID]
	if !ok || !ownsCart(cart, meta) {
		s.fail(c, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("The Cart with ID %q was not found.", cartID), "")
		return
	}
	if req.Version != cart.Version {
		message := fmt.Sprintf("Object %s has a different version than expected. Expected: %d - Actual: %d.", cartID, req.Version, cart.Version)
		s.fail(c, http.StatusConflict, "ConcurrentModification", message, "")
		return
	}

	updated := *cart
	updated.LineItems = append([]domain.LineItem(nil), cart.LineItems...)
	for _, action := range req.Actions {
		var err *apiFailure
		switch action.Action {
		case "addLineItem":
			err = s.addLineItemLocked(&updated, action)
		case "removeLineItem":
			err = removeLineItem(&updated, action.LineItemID)
		case "changeLineItemQuantity":
			err = changeLineItemQuantity(&updated, action.LineItemID, action.Quantity)
		default:
			err = &apiFailure{status: http.StatusBadRequest, code: "InvalidAction", message: fmt.Sprintf("The action %q is not supported.", action.Action)}
		}
		if err != nil {
			s.fail(c, err.status, err.code, err.message, "")
			return
		}
	}

	recomputeTotals(&updated)
	updated.Version = cart.Version + 1
	s.carts[cartID] = &updated
	c.JSON(http.StatusOK, &updated)
}

type apiFailure struct {
	status  int
	code    string
	message string
}

func ownsCart(cart *domain.Cart, meta tokenMeta) bool {
	if meta.customerID != "" {
		return cart.CustomerID == meta.customerID
	}
	return cart.AnonymousID != "" && cart.AnonymousID == meta.anonymousID
}

func (s *Server) addLineItemLocked(cart *domain.Cart, action cartAction) *apiFailure {
	if action.Quantity <= 0 {
		return &apiFailure{status: http.StatusBadRequest, code: "InvalidInput", message: "quantity must be positive"}
	}
	variantID := action.VariantID
	if variantID == 0 {
		variantID = 1
	}
	product, variant := s.findVariantLocked(action.ProductID, variantID)
	if product == nil {
		return &apiFailure{status: http.StatusBadRequest, code: "InvalidInput", message: fmt.Sprintf("A product with ID %q was not found.", action.ProductID)}
	}
	price := domain.Price{}
	if len(variant.Prices) > 0 {
		price = variant.Prices[0]
	}

	for i, line := range cart.LineItems {
		if line.ProductID == product.ID && line.VariantID == variantID {
			cart.LineItems[i].Quantity += action.Quantity
			return nil
		}
	}
	cart.LineItems = append(cart.LineItems, domain.LineItem{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		VariantID: variantID,
		Name:      product.Name,
		Quantity:  action.Quantity,
		Price:     price,
	})
	return nil
}

func removeLineItem(cart *domain.Cart, lineItemID string) *apiFailure {
	for i, line := range cart.LineItems {
		if line.ID == lineItemID {
			cart.LineItems = append(cart.LineItems[:i], cart.LineItems[i+1:]...)
			return nil
		}
	}
	return &apiFailure{status: http.StatusBadRequest, code: "InvalidInput", message: fmt.Sprintf("A line item with ID %q was not found.", lineItemID)}
}

func changeLineItemQuantity(cart *domain.Cart, lineItemID string, quantity int) *apiFailure {
	if quantity <= 0 {
		return removeLineItem(cart, lineItemID)
	}
	for i, line := range cart.LineItems {
		if line.ID == lineItemID {
			cart.LineItems[i].Quantity = quantity
			return nil
		}
	}
	return &apiFailure{status: http.StatusBadRequest, code: "InvalidInput", message: fmt.Sprintf("A line item with ID %q was not found.", lineItemID)}
}

func (s *Server) findVariantLocked(productID string, variantID int) (*domain.ProductProjection, *domain.Variant) {
	for i := range s.products {
		p := &s.products[i]
		if p.ID != productID {
			continue
		}
		if p.MasterVariant.ID == variantID {
			return p, &p.MasterVariant
		}
		for j := range p.Variants {
			if p.Variants[j].ID == variantID {
				return p, &p.Variants[j]
			}
		}
	}
	return nil, nil
}

func recomputeTotals(cart *domain.Cart) {
	var total int64
	for i := range cart.LineItems {
		line := &cart.LineItems[i]
		lineTotal := line.Price.Value.CentAmount * int64(line.Quantity)
		line.TotalPrice = domain.Money{
			Type:           "centPrecision",
			CurrencyCode:   line.Price.Value.CurrencyCode,
			CentAmount:     lineTotal,
			FractionDigits: 2,
		}
		total += lineTotal
	}
	cart.TotalPrice.CentAmount = total
	if cart.TotalPrice.Type == "" {
		cart.TotalPrice.Type = "centPrecision"
	}
}
