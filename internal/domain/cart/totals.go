package cart

import "github.com/shopspring/decimal"

// 手数料率が未登録の農園に適用する既定の率（5%）。
// プラン未設定を「標準手数料とみなす」仕様で、エラーにはしない。
var DefaultFeeRate = decimal.NewFromFloat(0.05)

// 農園ごとの手数料明細。
type FarmFeeLine struct {
	FarmID   int64           `json:"farm_id"`
	FarmName string          `json:"farm_name"`
	Rate     decimal.Decimal `json:"rate"`
	Fee      decimal.Decimal `json:"fee"`
}

// チェックアウト画面に出す集計。カート状態と料率から毎回導出する純粋な射影。
type CheckoutTotals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	TransactionFees decimal.Decimal `json:"transaction_fees"`
	Total           decimal.Decimal `json:"total"`
	FeeLines        []FarmFeeLine   `json:"fee_lines"`
}

// rates に無い農園は DefaultFeeRate で計算する。
// 価格未定の明細は小計にも手数料にも0として寄与する。
func (c *Cart) CheckoutTotals(rates map[int64]decimal.Decimal) CheckoutTotals {
	subtotal := decimal.Zero
	fees := decimal.Zero

	feeByFarm := make(map[int64]*FarmFeeLine)
	var farmOrder []int64

	for _, it := range c.items {
		if _, ok := feeByFarm[it.FarmID]; !ok {
			rate, ok := rates[it.FarmID]
			if !ok {
				rate = DefaultFeeRate
			}
			feeByFarm[it.FarmID] = &FarmFeeLine{
				FarmID:   it.FarmID,
				FarmName: it.FarmName,
				Rate:     rate,
				Fee:      decimal.Zero,
			}
			farmOrder = append(farmOrder, it.FarmID)
		}

		if it.Price == nil {
			continue
		}

		line := it.Price.Mul(decimal.NewFromInt(it.Quantity))
		subtotal = subtotal.Add(line)

		f := feeByFarm[it.FarmID]
		f.Fee = f.Fee.Add(line.Mul(f.Rate))
	}

	feeLines := make([]FarmFeeLine, 0, len(farmOrder))
	for _, farmID := range farmOrder {
		f := feeByFarm[farmID]
		fees = fees.Add(f.Fee)
		feeLines = append(feeLines, *f)
	}

	return CheckoutTotals{
		Subtotal:        subtotal,
		TransactionFees: fees,
		Total:           subtotal.Add(fees),
		FeeLines:        feeLines,
	}
}
