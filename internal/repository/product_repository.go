package repository

import (
	"context"
	"errors"

	"marketcart/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Page   int
	Limit  int
	Q      string
	FarmID *int64
	Sort   string
}

// FindByID で返す農園名付きの商品ビュー。
type ProductWithFarm struct {
	Product  model.Product
	FarmName string
}

// 商品カタログの読み取りだけを約束（書き込みは出店者側の管轄）。
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]ProductWithFarm, int64, error)
	FindByID(ctx context.Context, id int64) (ProductWithFarm, error)
}
