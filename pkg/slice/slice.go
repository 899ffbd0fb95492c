// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice holds the generic transforms used when mapping upstream rows
and catalog views. It complements the standard [slices] package.
*/
package slice

// Map applies transform to every element. A nil input stays nil.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// MapNonZero applies transform and drops zero results, e.g. blank genre
// names. The result is nil when nothing survives.
func MapNonZero[T any, U comparable](input []T, transform func(T) U) []U {
	var zero U
	var result []U
	for _, v := range input {
		if out := transform(v); out != zero {
			result = append(result, out)
		}
	}
	return result
}
