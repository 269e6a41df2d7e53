// Package testutil provides test assertion helpers shared across packages.
package testutil

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/Nakamura2828/ComfyUI-JK-TextTools/bbox"
)

// Assert provides test assertions.
type Assert struct {
	t *testing.T
}

// NewAssert creates a new assert helper.
func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t}
}

// Equal asserts that two values are equal.
func (a *Assert) Equal(expected, actual any, msgAndArgs ...any) {
	a.t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		a.fail(fmt.Sprintf("Expected: %v\nActual: %v", expected, actual), msgAndArgs...)
	}
}

// NotEqual asserts that two values are not equal.
func (a *Assert) NotEqual(expected, actual any, msgAndArgs ...any) {
	a.t.Helper()
	if reflect.DeepEqual(expected, actual) {
		a.fail(fmt.Sprintf("Expected values to be different, but both were: %v", actual), msgAndArgs...)
	}
}

// True asserts that a value is true.
func (a *Assert) True(value bool, msgAndArgs ...any) {
	a.t.Helper()
	if !value {
		a.fail("Expected true, but got false", msgAndArgs...)
	}
}

// False asserts that a value is false.
func (a *Assert) False(value bool, msgAndArgs ...any) {
	a.t.Helper()
	if value {
		a.fail("Expected false, but got true", msgAndArgs...)
	}
}

// Error asserts that an error occurred.
func (a *Assert) Error(err error, msgAndArgs ...any) {
	a.t.Helper()
	if err == nil {
		a.fail("Expected error, but got nil", msgAndArgs...)
	}
}

// NoError asserts that no error occurred.
func (a *Assert) NoError(err error, msgAndArgs ...any) {
	a.t.Helper()
	if err != nil {
		a.fail(fmt.Sprintf("Expected no error, but got: %v", err), msgAndArgs...)
	}
}

// Contains asserts that a string contains a substring.
func (a *Assert) Contains(s, substr string, msgAndArgs ...any) {
	a.t.Helper()
	if !strings.Contains(s, substr) {
		a.fail(fmt.Sprintf("Expected %q to contain %q", s, substr), msgAndArgs...)
	}
}

// Len asserts the length of a collection.
func (a *Assert) Len(collection any, length int, msgAndArgs ...any) {
	a.t.Helper()
	actual := getLen(collection)
	if actual != length {
		a.fail(fmt.Sprintf("Expected length %d, but got %d", length, actual), msgAndArgs...)
	}
}

// Empty asserts that a collection is empty.
func (a *Assert) Empty(collection any, msgAndArgs ...any) {
	a.t.Helper()
	if getLen(collection) != 0 {
		a.fail(fmt.Sprintf("Expected empty collection, but got length %d", getLen(collection)), msgAndArgs...)
	}
}

// InDelta asserts that two floats are within a delta.
func (a *Assert) InDelta(expected, actual, delta float64, msgAndArgs ...any) {
	a.t.Helper()

	diff := expected - actual
	if diff < 0 {
		diff = -diff
	}

	if diff > delta {
		a.fail(fmt.Sprintf("Expected %f ± %f, but got %f (diff: %f)", expected, delta, actual, diff), msgAndArgs...)
	}
}

// MaskEqual asserts that a mask matches the expected row values exactly.
func (a *Assert) MaskEqual(expected [][]float32, m *bbox.Mask, msgAndArgs ...any) {
	a.t.Helper()
	if m == nil {
		a.fail("Expected a mask, but got nil", msgAndArgs...)
		return
	}
	if !reflect.DeepEqual(expected, m.Rows()) {
		a.fail(fmt.Sprintf("Expected mask rows: %v\nActual: %v", expected, m.Rows()), msgAndArgs...)
	}
}

// Helper functions

func (a *Assert) fail(message string, msgAndArgs ...any) {
	if len(msgAndArgs) > 0 {
		if format, ok := msgAndArgs[0].(string); ok && len(msgAndArgs) > 1 {
			message = fmt.Sprintf(format, msgAndArgs[1:]...) + "\n" + message
		} else if len(msgAndArgs) == 1 {
			message = fmt.Sprintf("%v\n%s", msgAndArgs[0], message)
		}
	}
	a.t.Fatal(message)
}

func getLen(value any) int {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Array, reflect.Chan, reflect.Map, reflect.Slice, reflect.String:
		return v.Len()
	default:
		panic(fmt.Sprintf("Cannot get length of type %T", value))
	}
}
