package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine(nil, nil))

	first := errors.New("shutdown")
	second := errors.New("listener")
	err := Combine(nil, first, second)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}

func TestNewErrorf(t *testing.T) {
	assert.EqualError(t, NewErrorf("port %d taken", 8080), "port 8080 taken")
}

func TestRecover(t *testing.T) {
	assert.NotPanics(t, func() {
		defer Recover("handler")
		panic("boom")
	})
	assert.NotPanics(t, func() {
		defer Recover("")
	})
}
