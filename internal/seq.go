package internal

import (
	"iter"
)

// Concat concatenates multiple iterators into a single iterator sequence.
func Concat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return
				}
			}
		}
	}
}

// Repeat yields value count times.
func Repeat[T any](value T, count int) iter.Seq[T] {
	return func(yield func(T) bool) {
		for range count {
			if !yield(value) {
				return
			}
		}
	}
}

// Count drains seq and returns the number of values it yielded.
func Count[T any](seq iter.Seq[T]) (n int) {
	for range seq {
		n++
	}
	return
}
