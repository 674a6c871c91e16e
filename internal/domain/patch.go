package domain

// setIf overwrites *dst with *v when v is non-nil.
func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
