package model

import "time"

// 出店者（生産者アカウント）。料金プランは farmer 単位で紐づく。
type Farmer struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DisplayName   string    `gorm:"type:varchar(100);not null" json:"display_name"`
	PricingPlanID int64     `gorm:"not null;index" json:"pricing_plan_id"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 農園。手数料計算の単位（farm → farmer → pricing_plan で解決する）。
type Farm struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FarmerID  int64     `gorm:"not null;index" json:"farmer_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	City      string    `gorm:"type:varchar(100)" json:"city"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
