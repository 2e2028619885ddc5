package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// 農園ごとの取引手数料率の参照。
// farm → farmer → 有効な pricing_plan の transaction_fee を解決する。
// 見つからない場合は ErrNotFound（呼び出し側が既定率にフォールバックする）。
type FeeRateRepository interface {
	FindRateByFarmID(ctx context.Context, farmID int64) (decimal.Decimal, error)
}
