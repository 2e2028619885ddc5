package cart_test

import (
	"testing"

	"marketcart/internal/domain/cart"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// =====================
// AddItem
// =====================

func TestCart_AddItem_MergesSameID(t *testing.T) {
	c := cart.New()

	c.AddItem(cart.Item{ID: "p1", Title: "トマト", FarmID: 1, FarmName: "ひだまり農園", Price: dec("3.00"), Quantity: 1})
	c.AddItem(cart.Item{ID: "p1", Title: "別名で追加", FarmID: 9, Price: dec("99.00"), Quantity: 2})

	items := c.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].Quantity)

	// 2回目以降のタイトル・価格・農園は無視（最初の値が残る）
	assert.Equal(t, "トマト", items[0].Title)
	assert.Equal(t, int64(1), items[0].FarmID)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("3.00")))
}

func TestCart_AddItem_DefaultQuantityIsOne(t *testing.T) {
	c := cart.New()

	c.AddItem(cart.Item{ID: "p1", Quantity: 0})
	c.AddItem(cart.Item{ID: "p2", Quantity: -5})

	for _, it := range c.Items() {
		assert.Equal(t, int64(1), it.Quantity)
	}
	assert.Equal(t, int64(2), c.TotalItemCount())
}

// =====================
// UpdateQuantity / RemoveItem
// =====================

func TestCart_UpdateQuantity_BelowOneRemoves(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Item{ID: "p1", Price: dec("5.00"), Quantity: 2})

	c.UpdateQuantity("p1", 0)

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.TotalItemCount())
}

func TestCart_UpdateQuantity_UnknownIDIsNoop(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Item{ID: "p1", Quantity: 2})

	c.UpdateQuantity("missing", 10)

	items := c.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].Quantity)
}

func TestCart_RemoveItem(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Item{ID: "a", Price: dec("5.00"), Quantity: 2})
	c.AddItem(cart.Item{ID: "b", Price: dec("3.00"), Quantity: 1})

	c.RemoveItem("a")
	c.RemoveItem("a") // 2回目は何もしない

	items := c.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, int64(1), c.TotalItemCount())
	assert.True(t, c.TotalPrice().Equal(decimal.RequireFromString("3.00")))
}

// =====================
// Clear / 集計
// =====================

func TestCart_Clear_Unconditional(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Item{ID: "p1", Price: dec("10.00"), Quantity: 3})
	c.AddItem(cart.Item{ID: "p2", Quantity: 1})

	c.Clear()

	assert.Equal(t, int64(0), c.TotalItemCount())
	assert.True(t, c.TotalPrice().IsZero())
	assert.Empty(t, c.Items())
}

func TestCart_TotalPrice_UnknownPriceCountsAsZero(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Item{ID: "p1", Quantity: 3}) // 価格未定
	c.AddItem(cart.Item{ID: "p2", Price: dec("2.50"), Quantity: 2})

	// 未定分は0寄与。エラーにもNaNにもならない。
	assert.True(t, c.TotalPrice().Equal(decimal.RequireFromString("5.00")))
	assert.Equal(t, int64(5), c.TotalItemCount())
}

func TestCart_FarmIDs_Deduplicated(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Item{ID: "p1", FarmID: 1, Quantity: 1})
	c.AddItem(cart.Item{ID: "p2", FarmID: 2, Quantity: 1})
	c.AddItem(cart.Item{ID: "p3", FarmID: 1, Quantity: 1})

	assert.ElementsMatch(t, []int64{1, 2}, c.FarmIDs())
}

// =====================
// CheckoutTotals
// =====================

func TestCart_CheckoutTotals_DefaultRateFallback(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Item{ID: "p1", FarmID: 1, FarmName: "F1", Price: dec("10.00"), Quantity: 1})

	// 率が空でも既定5%で計算できる
	out := c.CheckoutTotals(map[int64]decimal.Decimal{})

	assert.True(t, out.Subtotal.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, out.TransactionFees.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, out.Total.Equal(decimal.RequireFromString("10.5")))
}

func TestCart_CheckoutTotals_PerFarmRates(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Item{ID: "p1", FarmID: 1, FarmName: "F1", Price: dec("10.00"), Quantity: 2})
	c.AddItem(cart.Item{ID: "p2", FarmID: 2, FarmName: "F2", Price: dec("4.00"), Quantity: 1})
	c.AddItem(cart.Item{ID: "p3", FarmID: 2, FarmName: "F2", Quantity: 5}) // 価格未定：手数料も0

	rates := map[int64]decimal.Decimal{
		1: decimal.RequireFromString("0.10"),
		2: decimal.RequireFromString("0.02"),
	}

	out := c.CheckoutTotals(rates)

	assert.True(t, out.Subtotal.Equal(decimal.RequireFromString("24.00")))
	// 20*0.10 + 4*0.02 = 2.08
	assert.True(t, out.TransactionFees.Equal(decimal.RequireFromString("2.08")))
	assert.True(t, out.Total.Equal(decimal.RequireFromString("26.08")))

	assert.Len(t, out.FeeLines, 2)
	assert.Equal(t, int64(1), out.FeeLines[0].FarmID)
	assert.True(t, out.FeeLines[0].Fee.Equal(decimal.RequireFromString("2.00")))
	assert.True(t, out.FeeLines[1].Fee.Equal(decimal.RequireFromString("0.08")))
}

func TestCart_CheckoutTotals_EmptyCart(t *testing.T) {
	c := cart.New()

	out := c.CheckoutTotals(nil)

	assert.True(t, out.Subtotal.IsZero())
	assert.True(t, out.TransactionFees.IsZero())
	assert.True(t, out.Total.IsZero())
	assert.Empty(t, out.FeeLines)
}

// =====================
// FromItems（スナップショット復元）
// =====================

func TestCart_FromItems_DropsInvalidQuantity(t *testing.T) {
	c := cart.FromItems([]cart.Item{
		{ID: "p1", Price: dec("2.00"), Quantity: 2},
		{ID: "p2", Quantity: 0},  // 不正行は復元しない
		{ID: "p3", Quantity: -1}, // 同上
	})

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(2), c.TotalItemCount())
}
