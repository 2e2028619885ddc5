package repository

import (
	"context"

	"marketcart/internal/domain/cart"
)

// セッション単位のカート永続化。
// スナップショット全体を丸ごと書く（同一セッションの並行書き込みは後勝ち）。
type CartStore interface {
	// セッションのカートを読み出す。無ければ ErrNotFound。
	Load(ctx context.Context, sessionID string) ([]cart.Item, error)
	Save(ctx context.Context, sessionID string, items []cart.Item) error
	Delete(ctx context.Context, sessionID string) error
}
