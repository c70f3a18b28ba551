package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ClaimModel struct {
	ID                   string          `gorm:"primaryKey;size:36"`
	ClaimNumber          string          `gorm:"uniqueIndex;size:50;not null"`
	IMEI                 string          `gorm:"column:imei;size:15;not null;index"`
	ProductID            string          `gorm:"size:100;not null"`
	CustomerName         string          `gorm:"size:200;not null;index"`
	CustomerPhone        string          `gorm:"size:50"`
	CustomerEmail        string          `gorm:"size:255"`
	ServiceCenterID      string          `gorm:"size:100;index"`
	RepairCost           decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PaidAmount           decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Currency             string          `gorm:"size:3;not null"`
	Status               string          `gorm:"size:20;not null;index"`
	PaymentStatus        string          `gorm:"size:20;not null;index"`
	AuthorizedForPayment bool            `gorm:"not null;default:false;index"`
	ApprovedAt           *time.Time
	ApprovedBy           string `gorm:"size:255"`
	RejectedAt           *time.Time
	RejectedBy           string `gorm:"size:255"`
	CompletedAt          *time.Time
	CompletedBy          string `gorm:"size:255"`
	AuthorizedAt         *time.Time
	AuthorizedBy         string `gorm:"size:255"`
	PaidAt               *time.Time
	PaidBy               string            `gorm:"size:255"`
	RejectionReason      string            `gorm:"type:text"`
	TransactionReference string            `gorm:"size:100"`
	Notes                datatypes.JSONMap `gorm:"type:json"`
	Metadata             datatypes.JSONMap `gorm:"type:json"`
	Version              int               `gorm:"not null;default:1"`
	CreatedAt            time.Time         `gorm:"not null;index"`
	UpdatedAt            time.Time         `gorm:"not null"`
}

func (ClaimModel) TableName() string {
	return "claims"
}

// ClaimAuditModel is append-only.
type ClaimAuditModel struct {
	ID          string    `gorm:"primaryKey;size:36"`
	ClaimID     string    `gorm:"size:36;not null;index:idx_claim_audit_claim_at,priority:1"`
	ClaimNumber string    `gorm:"size:50;not null"`
	Transition  string    `gorm:"size:30;not null"`
	FromStage   string    `gorm:"size:20;not null"`
	ToStage     string    `gorm:"size:20;not null"`
	ActorID     string    `gorm:"size:255;not null"`
	Role        string    `gorm:"size:50"`
	Notes       string    `gorm:"type:text"`
	Detail      string    `gorm:"type:text"`
	At          time.Time `gorm:"column:occurred_at;not null;index:idx_claim_audit_claim_at,priority:2"`
}

func (ClaimAuditModel) TableName() string {
	return "claim_audit_entries"
}

// ClaimSequenceModel holds named counters for claim numbers.
type ClaimSequenceModel struct {
	Name  string `gorm:"primaryKey;size:20"`
	Value int64  `gorm:"not null;default:0"`
}

func (ClaimSequenceModel) TableName() string {
	return "claim_sequences"
}
