package util

func IsNil(v any) bool {
	return v == nil
}
