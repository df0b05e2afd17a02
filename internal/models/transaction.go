package models

type Transaction struct {
	Type      TransactionType  `json:"type"`
	Amount    float64          `json:"amount"`
	Means     TransactionMeans `json:"means"`
	Reference string           `json:"reference"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt Timestamp        `json:"created_at"`
}

// PaymentAccountDetails tells a tenant where to send money.
type PaymentAccountDetails struct {
	Name          string `json:"name"`
	PaybillNumber string `json:"paybill_number"`
	AccountNumber string `json:"account_number"`
	Details       string `json:"details,omitempty"`
}
