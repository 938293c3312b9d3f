package debug

import (
	"testing"

	"github.com/zeebo/assert"
)

func TestAssert(t *testing.T) {
	Assert("holds", func() bool { return true })

	defer func() {
		rec := recover()
		err, ok := rec.(error)
		assert.That(t, ok)
		assert.That(t, Error.Has(err))
	}()
	Assert("broken", func() bool { return false })
	t.Fatal("assert did not panic")
}
