package outcome

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testOutcomeSucceed(t *testing.T) {
	var (
		assert = assert.New(t)
		o      = Succeed("result")
	)

	assert.Equal("result", o.Value())
	assert.Nil(o.Err())
	assert.False(o.Failed())
	assert.False(o.IsCancelled())
}

func testOutcomeFail(t *testing.T) {
	var (
		assert        = assert.New(t)
		expectedError = errors.New("expected")
		o             = Fail(expectedError)
	)

	assert.Nil(o.Value())
	assert.Equal(expectedError, o.Err())
	assert.True(o.Failed())
	assert.False(o.IsCancelled())
}

func testOutcomeFailNilError(t *testing.T) {
	var (
		assert = assert.New(t)
		o      = Fail(nil)
	)

	assert.Nil(o.Err())
	assert.False(o.Failed())
	assert.False(o.IsCancelled())
}

func testOutcomeCancelled(t *testing.T) {
	var (
		assert        = assert.New(t)
		expectedError = errors.New("cancel cause")
	)

	o := Cancelled(expectedError)
	assert.Equal(expectedError, o.Err())
	assert.False(o.Failed())
	assert.True(o.IsCancelled())

	o = Cancelled(nil)
	assert.Equal(context.Canceled, o.Err())
	assert.True(o.IsCancelled())
}

func TestOutcome(t *testing.T) {
	t.Run("Succeed", testOutcomeSucceed)
	t.Run("Fail", testOutcomeFail)
	t.Run("FailNilError", testOutcomeFailNilError)
	t.Run("Cancelled", testOutcomeCancelled)
}
