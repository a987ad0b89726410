package memory

import "context"

// TxManager - менеджер без транзакций для хранилища в памяти.
// Каждый репозиторий атомарен сам по себе, откат между репозиториями не выполняется
type TxManager struct{}

func NewTxManager() TxManager {
	return TxManager{}
}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
