package docsystem

// OperationObserver records the outcome of service operations.
// internal/metrics provides the Prometheus implementation.
type OperationObserver interface {
	// ObserveOperation records one call of op; err is nil on success
	ObserveOperation(op string, err error)

	// ObserveIngested records one materialized upload item
	ObserveIngested()
}
