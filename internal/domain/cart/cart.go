package cart

import "github.com/shopspring/decimal"

// カートの明細1行。
// Price が nil の場合は「価格未定」。表示上は未定、集計上は0として扱う。
type Item struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	FarmID         int64            `json:"farm_id"`
	FarmName       string           `json:"farm_name"`
	Price          *decimal.Decimal `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
	Thumbnail      string           `json:"thumbnail,omitempty"`
	Quantity       int64            `json:"quantity"`
}

// 1セッション分のカート。
// 同一IDの明細は常に1行（追加は数量加算）、数量は常に1以上。
type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{items: []Item{}}
}

// 保存済みスナップショットから復元する。
// 数量が1未満の行は不変条件を満たさないので捨てる。
func FromItems(items []Item) *Cart {
	c := New()
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		c.AddItem(it)
	}
	return c
}

// 明細のコピーを返す（呼び出し側の変更から守る）。
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

// 明細を追加する。同一IDが既にあれば数量だけを加算し、
// タイトル・価格などは最初に追加した時点の値を保つ。
// Quantity が1未満なら1として扱う（追加操作は失敗しない）。
func (c *Cart) AddItem(it Item) {
	qty := it.Quantity
	if qty < 1 {
		qty = 1
	}

	for i := range c.items {
		if c.items[i].ID == it.ID {
			c.items[i].Quantity += qty
			return
		}
	}

	it.Quantity = qty
	c.items = append(c.items, it)
}

// 数量を変更する。1未満は削除扱い。存在しないIDは何もしない。
func (c *Cart) UpdateQuantity(id string, qty int64) {
	if qty < 1 {
		c.RemoveItem(id)
		return
	}

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = qty
			return
		}
	}
}

// 明細を削除する。存在しないIDは何もしない。
func (c *Cart) RemoveItem(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// 全明細を無条件で空にする。
func (c *Cart) Clear() {
	c.items = []Item{}
}

// バッジ表示用の合計数量。毎回再計算する（キャッシュしない）。
func (c *Cart) TotalItemCount() int64 {
	var total int64
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// Σ (price × quantity)。価格未定の明細は0として加算する。
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		if it.Price == nil {
			continue
		}
		total = total.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}

// カート内に現れる農園IDの重複なし一覧。
// 手数料率の外部参照を「明細数」ではなく「農園数」に抑えるために使う。
func (c *Cart) FarmIDs() []int64 {
	seen := make(map[int64]bool, len(c.items))
	ids := make([]int64, 0, len(c.items))
	for _, it := range c.items {
		if seen[it.FarmID] {
			continue
		}
		seen[it.FarmID] = true
		ids = append(ids, it.FarmID)
	}
	return ids
}
