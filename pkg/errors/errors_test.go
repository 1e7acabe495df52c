package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("MessageFormatting", func(t *testing.T) {
		err := NewValidation("title is required")
		assert.Equal(t, "VALIDATION: title is required", err.Error())

		wrapped := NewStorage("upload failed", stderrors.New("connection reset"))
		assert.Equal(t, "STORAGE: upload failed: connection reset", wrapped.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		cause := stderrors.New("connection reset")
		err := NewStorage("upload failed", cause)
		assert.True(t, stderrors.Is(err, cause))
	})
}

func TestWrap(t *testing.T) {
	t.Run("NilPassesThrough", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("PreservesAppErrorType", func(t *testing.T) {
		err := Wrap(NewStorage("bucket down", nil), "image upload failed")
		require.Error(t, err)
		assert.True(t, IsStorage(err))
		assert.Contains(t, err.Error(), "image upload failed")
		assert.Contains(t, err.Error(), "bucket down")
	})

	t.Run("ForeignErrorBecomesInternal", func(t *testing.T) {
		err := Wrap(stderrors.New("boom"), "something broke")
		assert.True(t, IsInternal(err))
	})
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeNotFound, TypeOf(NewNotFound("missing")))
	assert.Equal(t, ErrorTypeDecode, TypeOf(NewDecode("bad image", nil)))
	assert.Equal(t, ErrorTypeInternal, TypeOf(stderrors.New("foreign")))
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"Validation", NewValidation("v"), IsValidation},
		{"NotFound", NewNotFound("n"), IsNotFound},
		{"Unauthorized", NewUnauthorized("u"), IsUnauthorized},
		{"Decode", NewDecode("d", nil), IsDecode},
		{"Encode", NewEncode("e", nil), IsEncode},
		{"Storage", NewStorage("s", nil), IsStorage},
		{"Write", NewWrite("w", nil), IsWrite},
		{"Query", NewQuery("q", nil), IsQuery},
		{"Auth", NewAuth("a", nil), IsAuth},
		{"Conflict", NewConflict("c"), IsConflict},
		{"Unavailable", NewUnavailable("u"), IsUnavailable},
		{"Internal", NewInternal("i", nil), IsInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.check(tc.err))
			assert.False(t, tc.check(stderrors.New("other")))
		})
	}
}
