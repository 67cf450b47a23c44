package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Profiles() ProfileRepository
	Users() UserRepository
}

// Usecaseから読み取りスナップショットのTx開始/commit/rollbackを隠す。
// 注文作成は意図的にTxで包まない（二段階書き込みの部分失敗を可視化するため）。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
