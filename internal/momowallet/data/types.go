package data

import (
	"time"

	"github.com/shopspring/decimal"
)

type Provider string

const (
	NullProvider   = Provider("")
	MTNProvider    = Provider("MTN")
	AirtelProvider = Provider("AIRTEL")
)

type Status string

const (
	NullStatus       = Status("")
	ProcessingStatus = Status("PROCESSING")
	CompletedStatus  = Status("COMPLETED")
	FailedStatus     = Status("FAILED")
)

// Terminal reports whether no further transitions are permitted.
func (s Status) Terminal() bool {
	return s == CompletedStatus || s == FailedStatus
}

type TopupStatus string

const (
	PendingTopupStatus = TopupStatus("PENDING")
	SuccessTopupStatus = TopupStatus("SUCCESS")
	FailedTopupStatus  = TopupStatus("FAILED")
)

type Withdrawal struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ID           string
	UserID       string
	GrossAmount  decimal.Decimal
	FeeAmount    decimal.Decimal
	NetAmount    decimal.Decimal
	Currency     string
	MobileNumber string
	Provider     Provider
	Status       Status
	ExternalRef  string
}

type Profile struct {
	UserID             string
	Mobile             string
	Provider           Provider
	SubscriptionTier   string
	WithdrawSkipsUsed  int
	WithdrawSkipsLimit int
}

type Topup struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	UserID      string
	PhoneNumber string
	Amount      decimal.Decimal
	Currency    string
	Provider    Provider
	Status      TopupStatus
	ExternalRef string
}

type AuditRecord struct {
	CreatedAt   time.Time
	UserID      string
	Amount      decimal.Decimal
	Kind        string
	Reference   string
	Description string
}

const (
	WithdrawalAuditKind = "withdrawal"
	RefundAuditKind     = "refund"
	CompletionAuditKind = "completion"
	TopupAuditKind      = "topup"
)
