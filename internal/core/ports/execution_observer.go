package ports

import "time"

// ExecutionObserver receives notifications about the execution recorder.
type ExecutionObserver interface {
	// ExecutionRecorded is called after an execution was committed.
	ExecutionRecorded(elapsed time.Duration, overage bool)

	// ExecutionRejected is called when an execution was refused. Reason is a short
	// machine-friendly label such as "not_entitled" or "cancelled".
	ExecutionRejected(reason string)

	// OrderStatusChanged is called for every committed status transition.
	OrderStatusChanged(from, to string)
}
