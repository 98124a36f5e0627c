package imaging

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindName(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{newErr("op", ErrDecode, "x"), "decode"},
		{newErr("op", ErrEncode, "x"), "encode"},
		{newErr("op", ErrBounds, "x"), "bounds"},
		{newErr("op", ErrAnimation, "x"), "animation"},
		{newErr("op", ErrIO, "x"), "io"},
		{newErr("op", ErrInput, "x"), "input"},
		{errors.New("plain"), "internal"},
		{nil, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, KindName(tt.err))
		})
	}
}

func TestError_Wrapping(t *testing.T) {
	cause := errors.New("disk on fire")
	err := wrapErr("save", ErrIO, cause)

	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrDecode)
	assert.Equal(t, "save: io error: disk on fire", err.Error())

	var ie *Error
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "save", ie.Op)

	// An *Error passes through untouched, keeping its original op and kind.
	again := wrapErr("encode", ErrEncode, err)
	assert.Same(t, err, again)
	assert.NotErrorIs(t, again, ErrEncode)
}

func TestError_StackTrace(t *testing.T) {
	err := newErr("crop", ErrBounds, "region %d outside", 3)

	assert.Equal(t, "crop: bounds error: region 3 outside", fmt.Sprintf("%v", err))

	verbose := fmt.Sprintf("%+v", err)
	assert.True(t, strings.HasPrefix(verbose, "crop: bounds error: region 3 outside"))
	assert.Contains(t, verbose, "TestError_StackTrace")
}

func TestError_NilCause(t *testing.T) {
	err := &Error{Op: "split", Kind: ErrAnimation}
	assert.Equal(t, "split: animation error", err.Error())
	assert.ErrorIs(t, err, ErrAnimation)
}
