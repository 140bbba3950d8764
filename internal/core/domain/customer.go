package domain

// Customer is the party an invoice is issued to.
type Customer struct {
	CustomerID string `json:"customerID"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}
