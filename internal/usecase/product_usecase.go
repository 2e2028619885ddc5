package usecase

import (
	"context"
	"net/http"
	"strings"

	repo "marketcart/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page   int
	Limit  int
	Q      string
	FarmID *int64
	Sort   string
}

// 商品の公開ビュー（農園名付き）。
type ProductView struct {
	ID             int64            `json:"id"`
	FarmID         int64            `json:"farm_id"`
	FarmName       string           `json:"farm_name"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Price          *decimal.Decimal `json:"price"`
	PriceAvailable bool             `json:"price_available"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
	Thumbnail      string           `json:"thumbnail,omitempty"`
}

type ProductListOutput struct {
	Items []ProductView `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	if in.FarmID != nil && *in.FarmID <= 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid farm_id")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		Page:   in.Page,
		Limit:  in.Limit,
		Q:      strings.TrimSpace(in.Q),
		FarmID: in.FarmID,
		Sort:   in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	views := make([]ProductView, 0, len(items))
	for _, it := range items {
		views = append(views, toProductView(it))
	}

	return ProductListOutput{
		Items: views,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (ProductView, error) {
	if productID <= 0 {
		return ProductView{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductView{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !p.Product.IsActive {
		return ProductView{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return toProductView(p), nil
}

func toProductView(p repo.ProductWithFarm) ProductView {
	return ProductView{
		ID:             p.Product.ID,
		FarmID:         p.Product.FarmID,
		FarmName:       p.FarmName,
		Title:          p.Product.Title,
		Description:    p.Product.Description,
		Price:          p.Product.Price,
		PriceAvailable: p.Product.Price != nil,
		CompareAtPrice: p.Product.CompareAtPrice,
		Thumbnail:      p.Product.Thumbnail,
	}
}
