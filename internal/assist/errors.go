package assist

// OperationError reports a CLI call that ran but did not succeed.
type OperationError struct {
	Operation string // e.g. "Bug analysis"
	Reason    string
}

func (e *OperationError) Error() string {
	return e.Operation + " failed: " + e.Reason
}
