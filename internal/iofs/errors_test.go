package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	originalErr := errors.New("permission denied")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		vars []any
	}{
		{"create dir", CreateDirError("/tmp/x", originalErr),
			errcode.CreateDirError, []any{"/tmp/x"}},
		{"copy file", CopyFileError("/tmp/config.yaml", originalErr),
			errcode.CopyFileError, []any{"/tmp/config.yaml"}},
		{"read file", ReadFileError("/tmp/config.yaml", originalErr),
			errcode.ReadFileError, []any{"/tmp/config.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gnErr *gn.Error
			require.True(t, errors.As(tt.err, &gnErr))
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Equal(t, tt.vars, gnErr.Vars)
			assert.ErrorIs(t, gnErr.Err, originalErr)
			assert.Contains(t, gnErr.Err.Error(), "TestErrors",
				"caller function is recorded")
		})
	}
}
