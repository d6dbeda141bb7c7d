package errors

// EngineError provides specialized error handling for engine operations
// (Set/Get/Del) and for the dispatcher and config loader built on top of
// them. It captures which key and which operation were in flight, which is
// the context that actually matters for diagnosing a Bitcask-style engine
// failure. Recovery replay reports its failures as StorageError instead.
type EngineError struct {
	*baseError

	// key is the key that was being processed when the error occurred.
	key []byte

	// operation names the call in flight, e.g. "Get", "Del", "Dispatch", "Load".
	operation string

	// segmentOrdinal identifies the segment involved, when known.
	segmentOrdinal uint64
}

// NewEngineError creates a new engine-specific error with the provided context.
func NewEngineError(err error, code ErrorCode, msg string) *EngineError {
	return &EngineError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while preserving the EngineError type.
func (ee *EngineError) WithMessage(msg string) *EngineError {
	ee.baseError.WithMessage(msg)
	return ee
}

// WithCode sets the error code while preserving the EngineError type.
func (ee *EngineError) WithCode(code ErrorCode) *EngineError {
	ee.baseError.WithCode(code)
	return ee
}

// WithDetail adds contextual information while preserving the EngineError type.
func (ee *EngineError) WithDetail(key string, value any) *EngineError {
	ee.baseError.WithDetail(key, value)
	return ee
}

// WithKey records which key was being processed when the error occurred.
func (ee *EngineError) WithKey(key []byte) *EngineError {
	ee.key = key
	return ee
}

// WithOperation records what engine operation was being performed.
func (ee *EngineError) WithOperation(operation string) *EngineError {
	ee.operation = operation
	return ee
}

// WithSegmentOrdinal captures which segment was involved in the error.
func (ee *EngineError) WithSegmentOrdinal(ordinal uint64) *EngineError {
	ee.segmentOrdinal = ordinal
	return ee
}

// Key returns the key that was being processed when the error occurred.
func (ee *EngineError) Key() []byte {
	return ee.key
}

// Operation returns the name of the operation that was being performed.
func (ee *EngineError) Operation() string {
	return ee.operation
}

// SegmentOrdinal returns the segment identifier associated with the error.
func (ee *EngineError) SegmentOrdinal() uint64 {
	return ee.segmentOrdinal
}

// NewKeyNotFoundError builds the error Del returns when the target key has
// no keydir entry.
func NewKeyNotFoundError(key []byte) *EngineError {
	return NewEngineError(nil, ErrorCodeKeyNotFound, "key not found").
		WithKey(key).
		WithOperation("Del")
}

// NewInvalidCommandError builds the error Get returns when the record at a
// keydir locator decodes as a Del instead of the Set the keydir promised.
func NewInvalidCommandError(key []byte, ordinal uint64) *EngineError {
	return NewEngineError(nil, ErrorCodeInvalidCommand, "keydir points at a non-Set record").
		WithKey(key).
		WithOperation("Get").
		WithSegmentOrdinal(ordinal)
}
