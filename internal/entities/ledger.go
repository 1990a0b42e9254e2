package entities

import (
	"time"

	"github.com/google/uuid"
)

type LedgerEntryType string

const LedgerRiderEarning LedgerEntryType = "rider_earning"

func (t LedgerEntryType) String() string {
	return string(t)
}

type LedgerEntry struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	EntryType     LedgerEntryType
	BeneficiaryID uuid.UUID
	AmountMinor   int64
	Currency      string
	CreatedAt     time.Time
}
