package errors

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneDropsInheritedTranslation(t *testing.T) {
	clone := Clone(ErrNotFound, "program not found")
	assert.Equal(t, "program not found", clone.Message)
	assert.Empty(t, clone.MessageTR)

	kept := Clone(ErrNotFound, "")
	assert.Equal(t, ErrNotFound.MessageTR, kept.MessageTR)
}

func TestLocalizeSetsBothMessages(t *testing.T) {
	err := Localize(ErrValidation, "intake_target is too long", "intake_target çok uzun")
	assert.Equal(t, ErrValidation.Code, err.Code)
	assert.Equal(t, "intake_target çok uzun", err.MessageTR)
	assert.Equal(t, "validation failed", ErrValidation.Message, "the shared value is untouched")

	raw, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"code":"VALIDATION_ERROR","message":"intake_target is too long","message_tr":"intake_target çok uzun","status":400}`, string(raw))
}

func TestLocalizeWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := LocalizeWrap(cause, ErrInternal, "failed to load program", "program yüklenemedi")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 500, err.Status)
	assert.Equal(t, "program yüklenemedi", err.MessageTR)
}

func TestFromErrorIsBilingual(t *testing.T) {
	err := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Equal(t, ErrInternal.MessageTR, err.MessageTR)
	assert.Nil(t, FromError(nil))
}

func TestWithFieldsCopiesMaps(t *testing.T) {
	fields := map[string]string{"gpa": "must be at most 100"}
	err := WithFields(ErrValidation, fields, map[string]string{"gpa": "en fazla 100 olmalıdır"})
	fields["gpa"] = "changed"
	assert.Equal(t, "must be at most 100", err.Fields["gpa"])
	assert.Equal(t, "en fazla 100 olmalıdır", err.FieldsTR["gpa"])
	assert.Nil(t, ErrValidation.Fields)
}
