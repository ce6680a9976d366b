package api

import "storefront-client/internal/domain"

// CartAction is one tagged variant of a cart update.
type CartAction struct {
	Action     string `json:"action"`
	ProductID  string `json:"productId,omitempty"`
	VariantID  int    `json:"variantId,omitempty"`
	LineItemID string `json:"lineItemId,omitempty"`
	Quantity   int    `json:"quantity,omitempty"`
}

// AddLineItem adds quantity units of a product variant to the cart.
func AddLineItem(productID string, variantID, quantity int) CartAction {
	return CartAction{Action: "addLineItem", ProductID: productID, VariantID: variantID, Quantity: quantity}
}

// RemoveLineItem removes a line item entirely.
func RemoveLineItem(lineItemID string) CartAction {
	return CartAction{Action: "removeLineItem", LineItemID: lineItemID}
}

// ChangeLineItemQuantity sets a line item's quantity.
func ChangeLineItemQuantity(lineItemID string, quantity int) CartAction {
	return CartAction{Action: "changeLineItemQuantity", LineItemID: lineItemID, Quantity: quantity}
}

// CustomerAction is one tagged variant of a customer update.
type CustomerAction struct {
	Action      string          `json:"action"`
	FirstName   string          `json:"firstName,omitempty"`
	LastName    string          `json:"lastName,omitempty"`
	Email       string          `json:"email,omitempty"`
	DateOfBirth string          `json:"dateOfBirth,omitempty"`
	AddressID   string          `json:"addressId,omitempty"`
	Address     *domain.Address `json:"address,omitempty"`
}

// SetFirstName updates the customer's first name.
func SetFirstName(name string) CustomerAction {
	return CustomerAction{Action: "setFirstName", FirstName: name}
}

// SetLastName updates the customer's last name.
func SetLastName(name string) CustomerAction {
	return CustomerAction{Action: "setLastName", LastName: name}
}

// ChangeEmail updates the customer's email address.
func ChangeEmail(email string) CustomerAction {
	return CustomerAction{Action: "changeEmail", Email: email}
}

// SetDateOfBirth updates the customer's date of birth.
func SetDateOfBirth(dob string) CustomerAction {
	return CustomerAction{Action: "setDateOfBirth", DateOfBirth: dob}
}

// AddAddress appends a new address to the customer.
func AddAddress(addr domain.Address) CustomerAction {
	a := addr
	return CustomerAction{Action: "addAddress", Address: &a}
}

// ChangeAddress replaces the address with the given id.
func ChangeAddress(addressID string, addr domain.Address) CustomerAction {
	a := addr
	return CustomerAction{Action: "changeAddress", AddressID: addressID, Address: &a}
}

// RemoveAddress deletes the address with the given id.
func RemoveAddress(addressID string) CustomerAction {
	return CustomerAction{Action: "removeAddress", AddressID: addressID}
}

// SetDefaultShippingAddress marks an owned address as the shipping default.
func SetDefaultShippingAddress(addressID string) CustomerAction {
	return CustomerAction{Action: "setDefaultShippingAddress", AddressID: addressID}
}

// SetDefaultBillingAddress marks an owned address as the billing default.
func SetDefaultBillingAddress(addressID string) CustomerAction {
	return CustomerAction{Action: "setDefaultBillingAddress", AddressID: addressID}
}
