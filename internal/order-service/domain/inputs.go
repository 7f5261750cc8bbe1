package domain

// The Unvalidated* records mirror a place-order request exactly as received.
// Nothing about them is trusted.

type UnvalidatedCustomerInfo struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	VipStatus    string `json:"vipStatus"`
}

type UnvalidatedAddress struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	AddressLine3 string `json:"addressLine3"`
	AddressLine4 string `json:"addressLine4"`
	City         string `json:"city"`
	ZipCode      string `json:"zipCode"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

type UnvalidatedOrderLine struct {
	OrderLineID string  `json:"orderLineId"`
	ProductCode string  `json:"productCode"`
	Quantity    float64 `json:"quantity"`
}

type UnvalidatedOrder struct {
	OrderID         string                  `json:"orderId"`
	CustomerInfo    UnvalidatedCustomerInfo `json:"customerInfo"`
	ShippingAddress UnvalidatedAddress      `json:"shippingAddress"`
	BillingAddress  UnvalidatedAddress      `json:"billingAddress"`
	Lines           []UnvalidatedOrderLine  `json:"lines"`
	PromotionCode   string                  `json:"promotionCode"`
}
