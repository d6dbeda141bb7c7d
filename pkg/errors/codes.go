package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes cover failure categories that can occur in any layer of
// the engine, independent of which subsystem raised them.
const (
	// ErrorCodeIO represents failures in input/output operations: reading or
	// writing segment files, listing the data directory, syncing to disk.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents client-side errors where the provided
	// data doesn't meet the system's requirements or constraints.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected system failures that don't fit
	// into other categories.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Engine error codes map directly to the error kinds the core surfaces.
const (
	// ErrorCodeKeyNotFound is returned when Del targets an absent key.
	ErrorCodeKeyNotFound ErrorCode = "KEY_NOT_FOUND"

	// ErrorCodeInvalidRequest is returned by the dispatcher for malformed
	// commands or wrong arity. Never produced by the core engine itself.
	ErrorCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	// ErrorCodeInvalidCommand is returned when a record read from disk
	// disagrees with what the keydir promised (a keydir-soundness
	// violation discovered at read time).
	ErrorCodeInvalidCommand ErrorCode = "INVALID_COMMAND"

	// ErrorCodePathIsNotDirectory is returned when Open's target exists but
	// is a regular file, not a directory.
	ErrorCodePathIsNotDirectory ErrorCode = "PATH_IS_NOT_DIRECTORY"

	// ErrorCodeFileNotFound is returned when a locator references a segment
	// ordinal that has no registered reader.
	ErrorCodeFileNotFound ErrorCode = "FILE_NOT_FOUND"

	// ErrorCodeSerde is returned when bytes read from a segment fail to
	// decode as a record, or fail their checksum.
	ErrorCodeSerde ErrorCode = "SERDE_ERROR"

	// ErrorCodeConfig is returned by the configuration loader, never by the
	// core engine.
	ErrorCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrorCodeStringConvert names a failed byte/string conversion at the
	// request/reply boundary. No code path in this module returns it: the
	// dispatcher's conversions between bytes and strings cannot fail.
	ErrorCodeStringConvert ErrorCode = "STRING_CONVERT_ERROR"

	// ErrorCodePermissionDenied indicates insufficient permissions to access
	// a segment file or the data directory.
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrorCodeDiskFull indicates that the storage device has run out of space.
	ErrorCodeDiskFull ErrorCode = "DISK_FULL"

	// ErrorCodeFilesystemReadonly indicates that the filesystem is mounted read-only.
	ErrorCodeFilesystemReadonly ErrorCode = "FILESYSTEM_READONLY"
)
