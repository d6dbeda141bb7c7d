package errors

// StorageError is a specialized error type for segment-file operations. It
// embeds baseError to inherit message/code/detail handling, then adds the
// physical coordinates needed to pinpoint exactly where on disk a problem
// occurred.
type StorageError struct {
	*baseError
	segmentOrdinal uint64 // Which segment was being accessed when the error occurred.
	offset         uint64 // Byte offset within the segment where the problem happened.
	fileName       string // Name of the file that caused the issue.
	path           string // Path of the file that caused the issue.
}

// NewStorageError creates a new storage-specific error.
func NewStorageError(err error, code ErrorCode, msg string) *StorageError {
	return &StorageError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while preserving the StorageError type.
func (se *StorageError) WithMessage(msg string) *StorageError {
	se.baseError.WithMessage(msg)
	return se
}

// WithCode sets the error code while preserving the StorageError type.
func (se *StorageError) WithCode(code ErrorCode) *StorageError {
	se.baseError.WithCode(code)
	return se
}

// WithDetail adds contextual information while preserving the StorageError type.
func (se *StorageError) WithDetail(key string, value any) *StorageError {
	se.baseError.WithDetail(key, value)
	return se
}

// WithSegmentOrdinal records which segment was involved in the error.
func (se *StorageError) WithSegmentOrdinal(ordinal uint64) *StorageError {
	se.segmentOrdinal = ordinal
	return se
}

// WithOffset records the byte position where the error occurred.
func (se *StorageError) WithOffset(offset uint64) *StorageError {
	se.offset = offset
	return se
}

// WithFileName captures which file was being processed when the error occurred.
func (se *StorageError) WithFileName(fileName string) *StorageError {
	se.fileName = fileName
	return se
}

// WithPath captures which path was being processed when the error occurred.
func (se *StorageError) WithPath(path string) *StorageError {
	se.path = path
	return se
}

// SegmentOrdinal returns the segment identifier where the error occurred.
func (se *StorageError) SegmentOrdinal() uint64 {
	return se.segmentOrdinal
}

// Offset returns the byte offset within the segment where the error happened.
// Combined with SegmentOrdinal, this gives you the exact location of the problem.
func (se *StorageError) Offset() uint64 {
	return se.offset
}

// FileName returns the name of the file that was being processed.
func (se *StorageError) FileName() string {
	return se.fileName
}

// Path returns the path of the file that was being processed.
func (se *StorageError) Path() string {
	return se.path
}
