package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize_ is used in structure padding to prevent false sharing.
// It's automatically calculated using the `golang.org/x/sys` package.
const CacheLineSize_ = unsafe.Sizeof(cpu.CacheLinePad{})

// Pad_ separates a hot lock word from the fields it guards.
// It is zero-sized when padding is disabled with the
// shortlock_disable_padding build tag.
type Pad_ [CacheLineSize_ * PaddingMult_]byte
