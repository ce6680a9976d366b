package stubapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront-client/internal/domain"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Server) signupHandler(c *gin.Context) {
	var draft domain.RegistrationData
	if err := c.ShouldBindJSON(&draft); err != nil {
		s.fail(c, http.StatusBadRequest, "InvalidJsonInput", "Request body does not contain valid JSON.", "")
		return
	}
	email := normalizeEmail(draft.Email)
	if email == "" {
		s.fail(c, http.StatusBadRequest, "RequiredField", "email: Missing required value", "email")
		return
	}
	if err := validatePassword(draft.Password); err != nil {
		s.fail(c, http.StatusBadRequest, "InvalidInput", err.Error(), "password")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "General", "Could not hash the password.", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		s.fail(c, http.StatusBadRequest, "DuplicateField", "There is already an existing customer with the provided email.", "email")
		return
	}

	addresses := make([]domain.Address, 0, len(draft.Addresses))
	for _, a := range draft.Addresses {
		a.ID = uuid.NewString()
		addresses = append(addresses, a)
	}
	customer := domain.Customer{
		ID:          uuid.NewString(),
		Version:     1,
		Email:       email,
		FirstName:   draft.FirstName,
		LastName:    draft.LastName,
		DateOfBirth: draft.DateOfBirth,
		Addresses:   addresses,
	}
	if id := addressIDFromIndex(addresses, draft.DefaultShippingAddress); id != "" {
		customer.DefaultShippingAddressID = id
		customer.ShippingAddressIDs = []string{id}
	}
	if id := addressIDFromIndex(addresses, draft.DefaultBillingAddress); id != "" {
		customer.DefaultBillingAddressID = id
		customer.BillingAddressIDs = []string{id}
	}

	s.customers[customer.ID] = &customerRecord{customer: customer, passwordHash: hashed}
	s.byEmail[email] = customer.ID

	c.JSON(http.StatusCreated, domain.CustomerSignInResult{Customer: customer})
}

func (s *Server) meHandler(c *gin.Context) {
	meta := identity(c)
	s.mu.Lock()
	record, ok := s.customers[meta.customerID]
	s.mu.Unlock()
	if !ok {
		s.fail(c, http.StatusNotFound, "ResourceNotFound", "The customer was not found.", "")
		return
	}
	c.JSON(http.StatusOK, record.customer)
}

type customerUpdateRequest struct {
	Version int              `json:"version"`
	Actions []customerAction `json:"actions"`
}

type customerAction struct {
	Action      string          `json:"action"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Email       string          `json:"email"`
	DateOfBirth string          `json:"dateOfBirth"`
	AddressID   string          `json:"addressId"`
	Address     *domain.Address `json:"address"`
}

func (s *Server) updateMeHandler(c *gin.Context) {
	meta := identity(c)
	var req customerUpdateRequest
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
	record, ok := s.customers[meta.customerID]
	if !ok {
		s.fail(c, http.StatusNotFound, "ResourceNotFound", "The customer was not found.", "")
		return
	}
	if req.Version != record.customer.Version {
		s.concurrentModification(c, record.customer.ID, req.Version, record.customer.Version)
		return
	}

	customer := record.customer
	for _, action := range req.Actions {
		switch action.Action {
		case "setFirstName":
			customer.FirstName = action.FirstName
		case "setLastName":
			customer.LastName = action.LastName
		case "changeEmail":
			email := normalizeEmail(action.Email)
			if email == "" {
				s.fail(c, http.StatusBadRequest, "InvalidInput", "email: Missing required value", "email")
				return
			}
			delete(s.byEmail, customer.Email)
			customer.Email = email
			s.byEmail[email] = customer.ID
		case "setDateOfBirth":
			customer.DateOfBirth = action.DateOfBirth
		case "addAddress":
			if action.Address == nil {
				s.fail(c, http.StatusBadRequest, "InvalidInput", "address: Missing required value", "")
				return
			}
			addr := *action.Address
			addr.ID = uuid.NewString()
			customer.Addresses = append(customer.Addresses, addr)
		case "changeAddress":
			idx := addressIndex(customer.Addresses, action.AddressID)
			if idx < 0 || action.Address == nil {
				s.fail(c, http.StatusBadRequest, "InvalidInput", "The address does not exist.", "")
				return
			}
			addr := *action.Address
			addr.ID = action.AddressID
			customer.Addresses[idx] = addr
		case "removeAddress":
			idx := addressIndex(customer.Addresses, action.AddressID)
			if idx < 0 {
				s.fail(c, http.StatusBadRequest, "InvalidInput", "The address does not exist.", "")
				return
			}
			customer.Addresses = append(customer.Addresses[:idx], customer.Addresses[idx+1:]...)
			if customer.DefaultShippingAddressID == action.AddressID {
				customer.DefaultShippingAddressID = ""
			}
			if customer.DefaultBillingAddressID == action.AddressID {
				customer.DefaultBillingAddressID = ""
			}
		case "setDefaultShippingAddress":
			if addressIndex(customer.Addresses, action.AddressID) < 0 {
				s.fail(c, http.StatusBadRequest, "InvalidInput", "The address does not exist.", "")
				return
			}
			customer.DefaultShippingAddressID = action.AddressID
		case "setDefaultBillingAddress":
			if addressIndex(customer.Addresses, action.AddressID) < 0 {
				s.fail(c, http.StatusBadRequest, "InvalidInput", "The address does not exist.", "")
				return
			}
			customer.DefaultBillingAddressID = action.AddressID
		default:
			s.fail(c, http.StatusBadRequest, "InvalidAction", fmt.Sprintf("The action %q is not supported.", action.Action), "")
			return
		}
	}

	customer.Version++
	record.customer = customer
	c.JSON(http.StatusOK, customer)
}

type passwordChangeRequest struct {
	Version         int    `json:"version"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) changePasswordHandler(c *gin.Context) {
	meta := identity(c)
	var req passwordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, "InvalidJsonInput", "Request body does not contain valid JSON.", "")
		return
	}

	s.mu.Lock()
	record, ok := s.customers[meta.customerID]
	if !ok {
		s.mu.Unlock()
		s.fail(c, http.StatusNotFound, "ResourceNotFound", "The customer was not found.", "")
		return
	}
	if req.Version != record.customer.Version {
		id, current := record.customer.ID, record.customer.Version
		s.mu.Unlock()
		s.concurrentModification(c, id, req.Version, current)
		return
	}
	if bcrypt.CompareHashAndPassword(record.passwordHash, []byte(req.CurrentPassword)) != nil {
		s.mu.Unlock()
		s.fail(c, http.StatusBadRequest, "InvalidCurrentPassword", "The given current password is incorrect.", "")
		return
	}
	if err := validatePassword(req.NewPassword); err != nil {
		s.mu.Unlock()
		s.fail(c, http.StatusBadRequest, "InvalidInput", err.Error(), "password")
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.mu.Unlock()
		s.fail(c, http.StatusInternalServerError, "General", "Could not hash the password.", "")
		return
	}
	record.passwordHash = hashed
	record.customer.Version++
	customer := record.customer
	s.mu.Unlock()

	// The platform invalidates existing user tokens on password change.
	s.revokeCustomerTokens(customer.ID)
	c.JSON(http.StatusOK, customer)
}

func (s *Server) concurrentModification(c *gin.Context, id string, expected, actual int) {
	message := fmt.Sprintf("Object %s has a different version than expected. Expected: %d - Actual: %d.", id, expected, actual)
	s.fail(c, http.StatusConflict, "ConcurrentModification", message, "")
}

func addressIDFromIndex(addresses []domain.Address, idx *int) string {
	if idx == nil || *idx < 0 || *idx >= len(addresses) {
		return ""
	}
	return addresses[*idx].ID
}

func addressIndex(addresses []domain.Address, id string) int {
	for i, a := range addresses {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func validatePassword(p string) error {
	if len(strings.TrimSpace(p)) < 8 {
		return fmt.Errorf("password must be at least %d characters", 8)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
