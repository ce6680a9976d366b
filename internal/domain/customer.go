package domain

import "errors"

// Address stores address fields as returned by the platform.
type Address struct {
	ID         string `json:"id,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Country    string `json:"country,omitempty"`
	StreetName string `json:"streetName,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	Email      string `json:"email,omitempty"`
}

// Customer represents the registered user aggregate; addresses are owned by
// it and referenced by id from the default address fields.
type Customer struct {
	ID                       string    `json:"id"`
	Version                  int       `json:"version"`
	Email                    string    `json:"email"`
	FirstName                string    `json:"firstName,omitempty"`
	LastName                 string    `json:"lastName,omitempty"`
	DateOfBirth              string    `json:"dateOfBirth,omitempty"`
	Addresses                []Address `json:"addresses,omitempty"`
	DefaultShippingAddressID string    `json:"defaultShippingAddressId,omitempty"`
	DefaultBillingAddressID  string    `json:"defaultBillingAddressId,omitempty"`
	ShippingAddressIDs       []string  `json:"shippingAddressIds,omitempty"`
	BillingAddressIDs        []string  `json:"billingAddressIds,omitempty"`
}

// Validate checks the shape of a customer response before it is trusted.
func (c *Customer) Validate() error {
	if c.ID == "" {
		return errors.New("customer: id missing")
	}
	if c.Email == "" {
		return errors.New("customer: email missing")
	}
	if c.Version < 1 {
		return errors.New("customer: version out of range")
	}
	return nil
}

// CustomerSignInResult wraps the customer returned by signup endpoints.
type CustomerSignInResult struct {
	Customer Customer `json:"customer"`
}

// Validate delegates to the wrapped customer.
func (r *CustomerSignInResult) Validate() error {
	return r.Customer.Validate()
}

// RegistrationData is the customer draft sent on signup.
type RegistrationData struct {
	Email                  string    `json:"email"`
	Password               string    `json:"password"`
	FirstName              string    `json:"firstName,omitempty"`
	LastName               string    `json:"lastName,omitempty"`
	DateOfBirth            string    `json:"dateOfBirth,omitempty"`
	Addresses              []Address `json:"addresses,omitempty"`
	DefaultShippingAddress *int      `json:"defaultShippingAddress,omitempty"`
	DefaultBillingAddress  *int      `json:"defaultBillingAddress,omitempty"`
}
