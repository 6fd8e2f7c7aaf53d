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
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Asset errors
	RegionsTableError
	LocalDBError

	// Remote service errors
	RemoteRequestError

	// Finder errors
	RegionNotResolvedError
	RegionSaveError
	CancelledError

	// Export errors
	ExportOpenError
	ExportWriteError
	ExportLoadError

	// Flag errors
	InvalidCoordinatesError
)
