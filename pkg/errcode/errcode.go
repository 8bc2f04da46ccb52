package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Lock errors
	LockAcquireError
	LockBusyError

	// Cache errors
	CacheBackendError
	CacheLoadError
	CacheSaveError
	CacheCloseError

	// Database errors
	DBConnectionError
	DBSchemaError

	// Lineage errors
	InvalidRankError

	// Hit table errors
	HitTableReadError
	HitTableWriteError
	HitTableColumnError
	HitTableRowError
	KnownTaxaReadError

	// Service errors
	ServiceRequestError
	ServiceStatusError
	ServiceDecodeError

	// Resolver errors
	ResolveCancelledError

	// Command line errors
	InvalidInputError
)
