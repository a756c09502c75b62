package repositories

// TxRepositories bundles repositories bound to a single transaction.
// Everything done through them commits or rolls back together.
type TxRepositories interface {
	Users() UserRepository
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
}

// TransactionManager runs a function inside one database transaction.
// If fn returns an error every write made through the TxRepositories is
// rolled back; otherwise the transaction commits before WithinTx returns.
type TransactionManager interface {
	WithinTx(fn func(r TxRepositories) error) error
}
