package utils

import (
	"errors"
	"sync/atomic"
	"testing"

	"go.viam.com/test"
)

func TestRunIndexedInParallel(t *testing.T) {
	t.Run("visits every index once", func(t *testing.T) {
		seen := make([]int32, 100)
		err := RunIndexedInParallel(len(seen), func(workNum int) error {
			atomic.AddInt32(&seen[workNum], 1)
			return nil
		})
		test.That(t, err, test.ShouldBeNil)
		for _, count := range seen {
			test.That(t, count, test.ShouldEqual, int32(1))
		}
	})

	t.Run("returns the first error", func(t *testing.T) {
		bad := errors.New("bad")
		err := RunIndexedInParallel(10, func(workNum int) error {
			if workNum == 3 {
				return bad
			}
			return nil
		})
		test.That(t, err, test.ShouldEqual, bad)
	})

	t.Run("converts panics", func(t *testing.T) {
		err := RunIndexedInParallel(1, func(workNum int) error {
			panic(1)
		})
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "got panic")
	})

	t.Run("zero work", func(t *testing.T) {
		err := RunIndexedInParallel(0, func(workNum int) error {
			return errors.New("never")
		})
		test.That(t, err, test.ShouldBeNil)
	})
}

func TestMathHelpers(t *testing.T) {
	test.That(t, Float64AlmostEqual(1, 1.0000001, 1e-6), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-6), test.ShouldBeFalse)
	test.That(t, Clamp(5, 0, 2), test.ShouldEqual, 2)
	test.That(t, Clamp(-5, 0, 2), test.ShouldEqual, 0)
	test.That(t, Clamp(1, 0, 2), test.ShouldEqual, 1)
	test.That(t, MaxInt(3, 4), test.ShouldEqual, 4)
}
