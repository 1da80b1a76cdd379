package errors

import (
	stderr "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestWrapKeepsSentinel(t *testing.T) {
	sentinel := New("unknown account")

	wrapped := sentinel.Wrapf("%q", "jhacker")
	other := sentinel.Wrap(stderr.New("boom"))

	require.True(t, Is(wrapped, sentinel))
	require.True(t, Is(other, sentinel))
	assert.Equal(t, `unknown account: "jhacker"`, wrapped.Error())
	assert.Equal(t, "unknown account: boom", other.Error())
	assert.Equal(t, "unknown account", sentinel.Error(), "sentinel must not be mutated by Wrap")
	assert.Nil(t, sentinel.Unwrap())
}

func TestWrapDoesNotConfuseSentinels(t *testing.T) {
	a := New("a")
	b := New("b")

	assert.False(t, Is(a.Wrap(b), New("b")))
	assert.True(t, Is(a.Wrap(b), b))
	assert.False(t, Is(a.Wrapf("x"), b))
}

func TestAs(t *testing.T) {
	sentinel := New("remote rejected")
	err := sentinel.Wrapf("code %d", 42)

	var target *Error
	require.True(t, As(err, &target))
	assert.True(t, Is(target, sentinel))
}
