package util

import (
	"os"

	"golang.org/x/exp/constraints"
)

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}
