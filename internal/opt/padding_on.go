//go:build !shortlock_disable_padding

package opt

// PaddingMult_ enables cache line padding around lock words.
// Use: go build -tags=shortlock_disable_padding to turn it off.
const PaddingMult_ = 1
