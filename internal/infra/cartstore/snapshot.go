package cartstore

import (
	"encoding/json"
	"time"

	"marketcart/internal/domain/cart"

	"github.com/shopspring/decimal"
)

// 保存ペイロードのスキーマ版数。明細の形を変えたら上げる。
const snapshotSchemaVersion = 1

type snapshotItem struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	FarmID         int64            `json:"farm_id"`
	FarmName       string           `json:"farm_name"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
	Thumbnail      string           `json:"thumbnail,omitempty"`
	Quantity       int64            `json:"quantity"`
}

// カート全体のスナップショット。書き込みは常にこの形。
type cartSnapshot struct {
	SchemaVersion int            `json:"schema_version"`
	Items         []snapshotItem `json:"items"`
	SavedAt       time.Time      `json:"saved_at"`
}

func encodeSnapshot(items []cart.Item, now time.Time) ([]byte, error) {
	snap := cartSnapshot{
		SchemaVersion: snapshotSchemaVersion,
		Items:         make([]snapshotItem, 0, len(items)),
		SavedAt:       now,
	}
	for _, it := range items {
		snap.Items = append(snap.Items, snapshotItem{
			ID:             it.ID,
			Title:          it.Title,
			FarmID:         it.FarmID,
			FarmName:       it.FarmName,
			Price:          it.Price,
			CompareAtPrice: it.CompareAtPrice,
			Thumbnail:      it.Thumbnail,
			Quantity:       it.Quantity,
		})
	}
	return json.Marshal(snap)
}

// 保存形を信用せずに読む。
//   - schema_version が無い旧形式（素の明細配列）も受け付ける
//   - 欠けたフィールドはゼロ値で埋める
//   - 数量が1未満の行は捨てる（不変条件）
func decodeSnapshot(data []byte) ([]cart.Item, error) {
	var snap cartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil || snap.SchemaVersion == 0 {
		// 旧形式: バージョン無しの明細配列
		var legacy []snapshotItem
		if legacyErr := json.Unmarshal(data, &legacy); legacyErr != nil {
			if err != nil {
				return nil, err
			}
			return nil, legacyErr
		}
		snap = cartSnapshot{SchemaVersion: snapshotSchemaVersion, Items: legacy}
	}

	items := make([]cart.Item, 0, len(snap.Items))
	for _, it := range snap.Items {
		if it.Quantity < 1 {
			continue
		}
		items = append(items, cart.Item{
			ID:             it.ID,
			Title:          it.Title,
			FarmID:         it.FarmID,
			FarmName:       it.FarmName,
			Price:          it.Price,
			CompareAtPrice: it.CompareAtPrice,
			Thumbnail:      it.Thumbnail,
			Quantity:       it.Quantity,
		})
	}
	return items, nil
}
