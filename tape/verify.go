package tape

// Verify compares the expected tape against the one read back.
// It returns nil on an exact match, *ErrLengthMismatch if the lengths
// differ, or *ErrByteMismatch at the first differing character.
func Verify(expected, observed []byte) (err error) {
	index := firstDifference(expected, observed)

	if len(expected) != len(observed) {
		err = &ErrLengthMismatch{
			Expected: len(expected),
			Observed: len(observed),
			Index:    index,
		}
		return
	}

	if index >= 0 {
		err = &ErrByteMismatch{
			Index:    index,
			Expected: expected[index],
			Observed: observed[index],
		}
	}

	return
}

func firstDifference(a, b []byte) int {
	for n := range min(len(a), len(b)) {
		if a[n] != b[n] {
			return n
		}
	}
	return -1
}
