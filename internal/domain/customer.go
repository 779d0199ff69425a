package domain

// Customer is the upstream identity record.
type Customer struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// ShippingAddress carries the fields collected by the checkout shipping step.
type ShippingAddress struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName,omitempty"`
	Address1    string `json:"address1"`
	City        string `json:"city"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}
