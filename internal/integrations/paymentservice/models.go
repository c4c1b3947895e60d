package paymentservice

// ChargeRequest запрос на списание
type ChargeRequest struct {
	OwnerID          int64  `json:"ownerId"`
	AccountReference string `json:"accountReference"`
	Amount           int64  `json:"amount"`
}

// ChargeResult результат списания
type ChargeResult struct {
	Settled   bool   `json:"settled"`
	PaymentID string `json:"paymentId,omitempty"`
}

// RefundRequest запрос на возврат ранее списанной суммы
type RefundRequest struct {
	OwnerID          int64  `json:"ownerId"`
	AccountReference string `json:"accountReference"`
	Amount           int64  `json:"amount"`
	Reason           string `json:"reason"`
}

// RefundResult результат возврата
type RefundResult struct {
	Refunded bool   `json:"refunded"`
	RefundID string `json:"refundId,omitempty"`
}
