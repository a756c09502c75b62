package repositories

import (
	"fmt"

	"gorm.io/gorm"
)

// GORMTransactionManager is a GORM implementation of TransactionManager.
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager creates a new instance of GORMTransactionManager.
func NewGORMTransactionManager(db *gorm.DB) *GORMTransactionManager {
	return &GORMTransactionManager{
		db: db,
	}
}

// WithinTx opens a transaction and hands fn repositories bound to it.
func (m *GORMTransactionManager) WithinTx(fn func(r TxRepositories) error) error {
	err := m.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormTxRepositories{tx: tx})
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// gormTxRepositories constructs the regular GORM repositories over the
// transaction handle, so the same code paths serve both transactional and
// standalone use.
type gormTxRepositories struct {
	tx *gorm.DB
}

func (r *gormTxRepositories) Users() UserRepository {
	return NewGORMUserRepository(r.tx)
}

func (r *gormTxRepositories) Products() ProductRepository {
	return NewGORMProductRepository(r.tx)
}

func (r *gormTxRepositories) Carts() CartRepository {
	return NewGORMCartRepository(r.tx)
}

func (r *gormTxRepositories) Orders() OrderRepository {
	return NewGORMOrderRepository(r.tx)
}
