package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaggedErrorMessage(t *testing.T) {
	plain := E(KindDecode, "unreadable image data", nil)
	assert.Equal(t, "unreadable image data", plain.Error())

	wrapped := E(KindPersistence, "insert failed", errors.New("database locked"))
	assert.Equal(t, "insert failed: database locked", wrapped.Error())
}

func TestTaggedErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := E(KindPersistence, "insert failed", cause)

	assert.ErrorIs(t, err, cause)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"direct tag", E(KindValidation, "latitude out of range", nil), KindValidation},
		{"formatted tag", Ef(KindModelUnavailable, "model %s missing", "v1"), KindModelUnavailable},
		{"wrapped tag", fmt.Errorf("classify: %w", E(KindDecode, "bad image", nil)), KindDecode},
		{"untagged", errors.New("something broke"), KindInternal},
		{"sentinel", ErrNotFound, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
