package testutil

import (
	"math"
	"testing"
)

// floatTolerance bounds acceptable drift in float comparisons.
const floatTolerance = 1e-9

// AssertClose fails the test when got and want differ by more than the
// shared tolerance.
func AssertClose(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > floatTolerance {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// AssertCloseWithin fails the test when got and want differ by more
// than tolerance.
func AssertCloseWithin(t *testing.T, name string, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s = %v, want %v (tolerance %v)", name, got, want, tolerance)
	}
}
