package recommendations

import "errors"

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

const (
	ErrorCodeNoMatch = "NO_MATCH"
	ErrorCodeStorage = "STORAGE_ERROR"
)
