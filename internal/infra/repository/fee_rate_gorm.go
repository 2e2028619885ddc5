package repository

import (
	"context"
	"errors"

	repo "marketcart/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FeeRateGormRepository struct {
	db *gorm.DB
}

// DI
func NewFeeRateGormRepository(db *gorm.DB) *FeeRateGormRepository {
	return &FeeRateGormRepository{db: db}
}

// 農園の取引手数料率を解決する。
// farms → farmers → pricing_plans（有効なプランのみ）。
// チェーンが途切れている場合は ErrNotFound。
func (r *FeeRateGormRepository) FindRateByFarmID(ctx context.Context, farmID int64) (decimal.Decimal, error) {
	var row struct {
		TransactionFee decimal.Decimal
	}

	err := r.db.WithContext(ctx).
		Table("farms").
		Joins("join farmers on farmers.id = farms.farmer_id").
		Joins("join pricing_plans on pricing_plans.id = farmers.pricing_plan_id").
		Where("farms.id = ? AND pricing_plans.is_active = ?", farmID, true).
		Select("pricing_plans.transaction_fee").
		Take(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, repo.ErrNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return row.TransactionFee, nil
}
