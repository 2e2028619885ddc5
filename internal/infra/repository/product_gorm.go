package repository

import (
	"context"
	"errors"
	"strings"

	"marketcart/internal/domain/model"
	repo "marketcart/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 商品＋農園名のスキャン用
type productRow struct {
	model.Product
	FarmName string
}

// 公開商品のみを、検索/農園/ソート/ページング付きで返す。
// 農園が非公開になった商品は一覧にも出さない。
func (r *ProductGormRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]repo.ProductWithFarm, int64, error) {
	var rows []productRow
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{}).
		Joins("join farms on farms.id = products.farm_id").
		Where("products.is_active = ?", true).
		Where("farms.is_active = ?", true)

	// q はtitleを対象
	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("products.title ILIKE ?", like)
	}

	//農園で絞り込み
	if q.FarmID != nil {
		tx = tx.Where("products.farm_id = ?", *q.FarmID)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []repo.ProductWithFarm{}, 0, err
	}

	//sort。価格未定（NULL）は末尾へ
	switch q.Sort {
	case "price_asc":
		tx = tx.Order("products.price asc nulls last").Order("products.id asc")
	case "price_desc":
		tx = tx.Order("products.price desc nulls last").Order("products.id desc")
	default:
		tx = tx.Order("products.created_at desc").Order("products.id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.
		Select("products.*, farms.name as farm_name").
		Offset(offset).Limit(q.Limit).
		Scan(&rows).Error; err != nil {
		return []repo.ProductWithFarm{}, 0, err
	}

	out := make([]repo.ProductWithFarm, 0, len(rows))
	for _, row := range rows {
		out = append(out, repo.ProductWithFarm{Product: row.Product, FarmName: row.FarmName})
	}
	return out, total, nil
}

// IDで商品を取得（農園名付き）
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (repo.ProductWithFarm, error) {
	var row productRow

	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Joins("join farms on farms.id = products.farm_id").
		Where("products.id = ?", id).
		Select("products.*, farms.name as farm_name").
		Take(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ProductWithFarm{}, repo.ErrNotFound
	}
	if err != nil {
		return repo.ProductWithFarm{}, err
	}
	return repo.ProductWithFarm{Product: row.Product, FarmName: row.FarmName}, nil
}
