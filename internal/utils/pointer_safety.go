package utils

func Ptr[T any](v T) *T {
	return &v
}

// CloneStrings copies s so callers can't alias internal state.
func CloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
