package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 料金プラン。transaction_fee は割合（例: 0.05 = 5%）。
type PricingPlan struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string          `gorm:"type:varchar(100);not null" json:"name"`
	TransactionFee decimal.Decimal `gorm:"type:numeric(6,4);not null;column:transaction_fee" json:"transaction_fee"`
	IsActive       bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
