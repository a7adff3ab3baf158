package shortlock

import "errors"

var (
	// ErrIndexOutOfRange is returned by List.RemoveIndex for an index that
	// was never handed out by Add.
	ErrIndexOutOfRange = errors.New("shortlock: index out of range")
	// ErrIndexRemoved is returned by List.RemoveIndex for an index whose
	// value has already been removed.
	ErrIndexRemoved = errors.New("shortlock: index already removed")
)
