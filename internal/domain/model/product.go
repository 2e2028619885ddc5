package model

import (
	"time"

	"github.com/shopspring/decimal"

	"gorm.io/gorm"
)

// 商品。Price が NULL の場合は「価格未定」（0円ではない）。
type Product struct {
	ID             int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	FarmID         int64            `gorm:"not null;index" json:"farm_id"`
	Title          string           `gorm:"type:varchar(200);not null" json:"title"`
	Description    string           `gorm:"type:text" json:"description"`
	Price          *decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	CompareAtPrice *decimal.Decimal `gorm:"type:numeric(12,2);column:compare_at_price" json:"compare_at_price"`
	Thumbnail      string           `gorm:"type:varchar(500)" json:"thumbnail"`
	IsActive       bool             `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt      time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
}
