package scroll

// EaseInOutQuad maps progress in [0, 1] to eased progress in [0, 1].
// Values outside the range are clamped.
func EaseInOutQuad(p float64) float64 {
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return 1
	case p < 0.5:
		return 2 * p * p
	default:
		q := -2*p + 2
		return 1 - q*q/2
	}
}
