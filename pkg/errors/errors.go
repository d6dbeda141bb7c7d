// Package errors implements the layered error taxonomy used throughout the
// engine. Every error raised by a subsystem carries a stable ErrorCode plus
// domain-specific context — which key, which segment, which byte offset —
// attached through a small fluent builder, so a caller several layers up
// the stack can inspect why something failed without parsing a message
// string.
//
// StorageError carries segment-file coordinates. EngineError carries
// keydir/engine operation context. ValidationError carries the field/rule
// pair for configuration validation failures. All three embed
// baseError, which is where message, code, cause, and the details map
// actually live.
package errors

import (
	stdErrors "errors"
	"os"
	"syscall"

	"github.com/iamNilotpal/kvd/pkg/filesys"
)

// IsValidationError checks if the given error is a ValidationError or contains one in its error chain.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsStorageError determines if an error is related to storage operations, such as file I/O,
// disk space issues, or segment file corruption.
func IsStorageError(err error) bool {
	var se *StorageError
	return stdErrors.As(err, &se)
}

// IsEngineError identifies errors that occurred during engine operations such as Set/Get/Del,
// request dispatch, or config loading. Engine errors carry which key and operation were involved,
// which is the context that matters most for diagnosing a Bitcask-style engine failure.
func IsEngineError(err error) bool {
	var ee *EngineError
	return stdErrors.As(err, &ee)
}

// AsValidationError safely extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsStorageError extracts StorageError context from an error chain, providing access to
// storage-specific information such as segment ordinal, file offset, file name, and path.
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if stdErrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsEngineError extracts EngineError context from an error chain, providing access to the
// key, operation, and segment ordinal involved in the failure.
func AsEngineError(err error) (*EngineError, bool) {
	var ee *EngineError
	if stdErrors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports it, or returns
// ErrorCodeInternal for errors that don't carry one.
func GetErrorCode(err error) ErrorCode {
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}

	if se, ok := AsStorageError(err); ok {
		return se.Code()
	}

	if ee, ok := AsEngineError(err); ok {
		return ee.Code()
	}

	return ErrorCodeInternal
}

// GetErrorDetails extracts structured details from any error that supports them,
// returning an empty map for errors without details.
func GetErrorDetails(err error) map[string]any {
	if ve, ok := AsValidationError(err); ok {
		if details := ve.Details(); details != nil {
			return details
		}
	}

	if se, ok := AsStorageError(err); ok {
		if details := se.Details(); details != nil {
			return details
		}
	}

	if ee, ok := AsEngineError(err); ok {
		if details := ee.Details(); details != nil {
			return details
		}
	}

	return make(map[string]any)
}

// ClassifyDirectoryCreationError analyzes data directory creation failures and returns
// the most specific StorageError it can determine from the underlying system error.
func ClassifyDirectoryCreationError(err error, path string) error {
	if stdErrors.Is(err, filesys.ErrIsNotDir) {
		return NewStorageError(err, ErrorCodePathIsNotDirectory, "data directory path exists but is not a directory").
			WithPath(path).
			WithDetail("operation", "directory_creation")
	}

	if os.IsPermission(err) {
		return NewStorageError(err, ErrorCodePermissionDenied, "insufficient permissions to create data directory").
			WithPath(path).
			WithDetail("operation", "directory_creation")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(err, ErrorCodeDiskFull, "insufficient disk space to create data directory").
					WithPath(path).
					WithDetail("operation", "directory_creation")
			case syscall.EROFS:
				return NewStorageError(err, ErrorCodeFilesystemReadonly, "cannot create directory on read-only filesystem").
					WithPath(path).
					WithDetail("operation", "directory_creation")
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to create data directory").
		WithPath(path).
		WithDetail("operation", "directory_creation")
}

// ClassifyFileOpenError analyzes segment file open failures and returns the most specific
// StorageError it can determine from the underlying system error.
func ClassifyFileOpenError(err error, filePath, fileName string) error {
	if os.IsPermission(err) {
		return NewStorageError(err, ErrorCodePermissionDenied, "insufficient permissions to open segment file").
			WithPath(filePath).
			WithFileName(fileName).
			WithDetail("operation", "file_open")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(err, ErrorCodeDiskFull, "insufficient disk space to extend segment file").
					WithPath(filePath).
					WithFileName(fileName).
					WithDetail("operation", "file_open")
			case syscall.EROFS:
				return NewStorageError(err, ErrorCodeFilesystemReadonly, "cannot open segment file on read-only filesystem").
					WithPath(filePath).
					WithFileName(fileName).
					WithDetail("operation", "file_open")
			}
		}
	}

	if os.IsNotExist(err) {
		return NewStorageError(err, ErrorCodeFileNotFound, "segment file does not exist").
			WithPath(filePath).
			WithFileName(fileName).
			WithDetail("operation", "file_open")
	}

	return NewStorageError(err, ErrorCodeIO, "failed to open segment file").
		WithPath(filePath).
		WithFileName(fileName).
		WithDetail("operation", "file_open").
		WithDetail("flags", []string{"O_CREATE", "O_RDWR", "O_APPEND"})
}

// ClassifySyncError analyzes segment flush/sync failures and returns the most specific
// StorageError it can determine from the underlying system error.
func ClassifySyncError(err error, fileName, filePath string, offset uint64) error {
	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(err, ErrorCodeDiskFull, "cannot sync segment file: insufficient disk space").
					WithFileName(fileName).
					WithPath(filePath).
					WithOffset(offset).
					WithDetail("operation", "file_sync")
			case syscall.EROFS:
				return NewStorageError(err, ErrorCodeFilesystemReadonly, "cannot sync segment file: filesystem is read-only").
					WithFileName(fileName).
					WithPath(filePath).
					WithOffset(offset).
					WithDetail("operation", "file_sync")
			case syscall.EIO:
				return NewStorageError(err, ErrorCodeIO, "i/o error during segment sync").
					WithFileName(fileName).
					WithPath(filePath).
					WithOffset(offset).
					WithDetail("operation", "file_sync").
					WithDetail("severity", "high")
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to sync segment file to disk").
		WithFileName(fileName).
		WithPath(filePath).
		WithOffset(offset).
		WithDetail("operation", "file_sync")
}
