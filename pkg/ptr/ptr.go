package ptr

// Ptr возвращает указатель на копию значения
func Ptr[T any](v T) *T {
	return &v
}

// PtrGet разыменовывает указатель, nil - нулевое значение
func PtrGet[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}

	return *v
}

// PtrOr разыменовывает указатель, nil - def
func PtrOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}

	return *v
}
