package usecase

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"marketcart/internal/domain/cart"
	repo "marketcart/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CartUsecase は /cart の業務ロジックです。
// カート本体は純粋なエンジン（domain/cart）が持ち、ここでは
// セッションストアとの読み書き・商品解決・手数料率の取得をつなぐ。
type CartUsecase struct {
	store       repo.CartStore
	productRepo repo.ProductRepository
	feeRepo     repo.FeeRateRepository
	logger      *zap.Logger
}

func NewCartUsecase(
	store repo.CartStore,
	productRepo repo.ProductRepository,
	feeRepo repo.FeeRateRepository,
	logger *zap.Logger,
) *CartUsecase {
	return &CartUsecase{
		store:       store,
		productRepo: productRepo,
		feeRepo:     feeRepo,
		logger:      logger,
	}
}

// 明細の表示用。price が null の行は「価格未定」として描画する。
type CartItemView struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	FarmID         int64            `json:"farm_id"`
	FarmName       string           `json:"farm_name"`
	Price          *decimal.Decimal `json:"price"`
	PriceAvailable bool             `json:"price_available"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
	Thumbnail      string           `json:"thumbnail,omitempty"`
	Quantity       int64            `json:"quantity"`
}

type CartResponse struct {
	Items      []CartItemView  `json:"items"`
	ItemCount  int64           `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type AddItemInput struct {
	ProductID int64
	Quantity  int64
}

// チェックアウト集計のレスポンス。fee_lines は手数料が0より大きい農園のみ。
type CheckoutTotalsResponse struct {
	Subtotal        decimal.Decimal    `json:"subtotal"`
	TransactionFees decimal.Decimal    `json:"transaction_fees"`
	Total           decimal.Decimal    `json:"total"`
	FeeLines        []cart.FarmFeeLine `json:"fee_lines"`
}

// GetCart はカート取得（保存が無ければ空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	c := u.loadCart(ctx, sessionID)
	return u.buildCartResponse(c), nil
}

// AddItem はカートに追加（同一商品は数量加算）。
// 商品のタイトル・農園・価格は追加時点の値を明細に写し取り、以後は変えない。
func (u *CartUsecase) AddItem(ctx context.Context, sessionID string, in AddItemInput) (CartResponse, error) {
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	// 数量未指定・不正は1個として扱う（追加は失敗させない）
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	// 商品チェック（公開のみ）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.Product.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}

	c := u.loadCart(ctx, sessionID)

	c.AddItem(cart.Item{
		ID:             strconv.FormatInt(p.Product.ID, 10),
		Title:          p.Product.Title,
		FarmID:         p.Product.FarmID,
		FarmName:       p.FarmName,
		Price:          p.Product.Price,
		CompareAtPrice: p.Product.CompareAtPrice,
		Thumbnail:      p.Product.Thumbnail,
		Quantity:       qty,
	})

	u.persist(ctx, sessionID, c)
	return u.buildCartResponse(c), nil
}

// 数量変更。1未満は削除扱い。存在しないIDは何もしない（エラーにしない）。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, sessionID string, itemID string, qty int64) (CartResponse, error) {
	c := u.loadCart(ctx, sessionID)

	c.UpdateQuantity(itemID, qty)

	u.persist(ctx, sessionID, c)
	return u.buildCartResponse(c), nil
}

// 明細削除。存在しないIDは何もしない。
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, itemID string) (CartResponse, error) {
	c := u.loadCart(ctx, sessionID)

	c.RemoveItem(itemID)

	u.persist(ctx, sessionID, c)
	return u.buildCartResponse(c), nil
}

// カートを無条件で空にする（チェックアウト完了時・明示的なクリア）。
func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if err := u.store.Delete(ctx, sessionID); err != nil {
		// 保存側の失敗でクリア操作は止めない
		u.logger.Warn("cart store delete failed", zap.Error(err))
	}
	return u.buildCartResponse(cart.New()), nil
}

// バッジ表示用の合計数量。
func (u *CartUsecase) ItemCount(ctx context.Context, sessionID string) (int64, error) {
	c := u.loadCart(ctx, sessionID)
	return c.TotalItemCount(), nil
}

// チェックアウト集計。カート内の農園ごとに手数料率を引いて
// 小計・手数料・総額を導出する。率の取得失敗は既定率で続行（止めない）。
func (u *CartUsecase) CheckoutTotals(ctx context.Context, sessionID string) (CheckoutTotalsResponse, error) {
	c := u.loadCart(ctx, sessionID)

	rates := u.fetchFeeRates(ctx, c.FarmIDs())
	totals := c.CheckoutTotals(rates)

	// 手数料0の農園は注文サマリに出さない
	feeLines := make([]cart.FarmFeeLine, 0, len(totals.FeeLines))
	for _, line := range totals.FeeLines {
		if line.Fee.IsPositive() {
			feeLines = append(feeLines, line)
		}
	}

	return CheckoutTotalsResponse{
		Subtotal:        totals.Subtotal,
		TransactionFees: totals.TransactionFees,
		Total:           totals.Total,
		FeeLines:        feeLines,
	}, nil
}

// 農園ごとの手数料率をまとめて取得する。
// 参照は重複を除いた農園数ぶんだけ発行し、並行で待ち合わせる。
// 未登録・失敗は結果に入れない（エンジン側で既定率になる）。
func (u *CartUsecase) fetchFeeRates(ctx context.Context, farmIDs []int64) map[int64]decimal.Decimal {
	rates := make(map[int64]decimal.Decimal, len(farmIDs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, farmID := range farmIDs {
		g.Go(func() error {
			rate, err := u.feeRepo.FindRateByFarmID(gctx, farmID)
			if err != nil {
				if !errors.Is(err, repo.ErrNotFound) {
					u.logger.Warn("fee rate lookup failed, using default",
						zap.Int64("farm_id", farmID), zap.Error(err))
				}
				return nil
			}

			mu.Lock()
			rates[farmID] = rate
			mu.Unlock()
			return nil
		})
	}

	// goroutineはエラーを返さないのでWaitは待ち合わせのみ
	_ = g.Wait()
	return rates
}

// 保存済みカートを復元する。無い・読めない場合は空カートで続行する。
func (u *CartUsecase) loadCart(ctx context.Context, sessionID string) *cart.Cart {
	items, err := u.store.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			u.logger.Warn("cart store load failed, starting empty", zap.Error(err))
		}
		return cart.New()
	}
	return cart.FromItems(items)
}

// カートを保存する。失敗してもメモリ上の状態を正として応答は返す。
func (u *CartUsecase) persist(ctx context.Context, sessionID string, c *cart.Cart) {
	if err := u.store.Save(ctx, sessionID, c.Items()); err != nil {
		u.logger.Warn("cart store save failed", zap.Error(err))
	}
}

func (u *CartUsecase) buildCartResponse(c *cart.Cart) CartResponse {
	items := c.Items()

	views := make([]CartItemView, 0, len(items))
	for _, it := range items {
		views = append(views, CartItemView{
			ID:             it.ID,
			Title:          it.Title,
			FarmID:         it.FarmID,
			FarmName:       it.FarmName,
			Price:          it.Price,
			PriceAvailable: it.Price != nil,
			CompareAtPrice: it.CompareAtPrice,
			Thumbnail:      it.Thumbnail,
			Quantity:       it.Quantity,
		})
	}

	return CartResponse{
		Items:      views,
		ItemCount:  c.TotalItemCount(),
		TotalPrice: c.TotalPrice(),
	}
}
