package aggregates

// WriteTxOwnership defines who owns write transaction boundaries.
type WriteTxOwnership string

const (
	// WriteTxOwnedByAggregate means aggregate write methods start and finish their own transaction.
	WriteTxOwnedByAggregate WriteTxOwnership = "aggregate_owned"
)

// Serialization names how concurrent writes to the same aggregate key are ordered.
type Serialization string

const (
	// SerializeAtomicUpdate relies on single-statement UPDATE expressions only.
	SerializeAtomicUpdate Serialization = "atomic_update"
	// SerializePerKeyLock additionally holds a per-key lock around the write.
	SerializePerKeyLock Serialization = "per_key_lock"
)

type Contract struct {
	Name             string
	WriteTxOwnership WriteTxOwnership
	Serialization    Serialization
	Notes            string
}

// Aggregate is the common marker for write-boundary implementations.
type Aggregate interface {
	Contract() Contract
}

func (c Contract) RequiresAggregateOwnedTx() bool {
	return c.WriteTxOwnership == WriteTxOwnedByAggregate
}
