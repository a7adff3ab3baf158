//go:build shortlock_disable_padding

package opt

// PaddingMult_ is zero: padding is force-disabled via the
// shortlock_disable_padding build tag.
const PaddingMult_ = 0
