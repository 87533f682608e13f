package dto

import "gorm.io/datatypes"

type RecordCreditRequest struct {
	Amount   int64          `json:"amount" validate:"required,ne=0"`
	Reason   string         `json:"reason" validate:"required,max=50"`
	Metadata datatypes.JSON `json:"metadata,omitempty"`
}

type BalanceResponse struct {
	Balance int64 `json:"balance"`
}
