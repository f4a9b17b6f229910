package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := ListNotFound("l1", "b1")

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidationError(err))
	assert.Equal(t, "list not found: l1 (in board b1)", err.Error())

	var nf *NotFoundError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &nf))
	assert.Equal(t, "list", nf.Resource)
}

func TestCorrupt_UnwrapsCause(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := Corrupt("boards", cause)

	assert.True(t, IsCorruptData(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"boards"`)
	assert.Equal(t, "corrupt data: x", Corrupt("", errors.New("x")).Error())
}

func TestStoreError(t *testing.T) {
	err := WriteFailed("boards", io.ErrShortWrite)

	assert.True(t, IsStoreIO(err))
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.False(t, IsCorruptData(err))
	assert.Equal(t, `store write "boards" failed: short write`, err.Error())

	assert.True(t, IsStoreIO(ReadFailed("boards", io.EOF)))
}

func TestValidation(t *testing.T) {
	err := IDMismatch("list", "l1", "l2")

	assert.True(t, IsValidationError(err))
	assert.Equal(t, `invalid list id: replacement has id "l2", expected "l1"`, err.Error())

	assert.Equal(t, "plain", (&ValidationError{Message: "plain"}).Error())
}
