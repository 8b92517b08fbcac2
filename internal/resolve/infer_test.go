package resolve

import (
	"errors"
	"testing"

	"github.com/sourceplane/chasm/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferKeys(t *testing.T) {
	tests := []struct {
		name    string
		sample  *model.Record
		pattern string
		want    []string
	}{
		{"series keys", model.NewRecord("x", 1, "y", 2, "y2", 3), `^y\d*$`, []string{"y", "y2"}},
		{"no match", model.NewRecord("x", 1), `^y\d*$`, []string{}},
		{"full match only", model.NewRecord("y", 1, "yy", 2, "xy", 3), `y`, []string{"y"}},
		{"alternation is anchored", model.NewRecord("ab", 1, "abc", 2, "c", 3), `ab|c`, []string{"ab", "c"}},
		{"sample order kept", model.NewRecord("y9", 1, "x", 2, "y1", 3), `y\d`, []string{"y9", "y1"}},
		{"nil sample", nil, `.*`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InferKeys(tt.sample, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferKeysInvalidPattern(t *testing.T) {
	_, err := InferKeys(model.NewRecord("x", 1), `y(`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrSchemaValidation))
}

func TestInferMissingReportsPatternField(t *testing.T) {
	cfg := model.DefaultChartConfig()
	cfg.DataYKeysSecondaryPattern = "z("

	_, err := inferMissing(cfg, model.NewRecord("z", 1))
	require.Error(t, err)

	var located *model.LocatedError
	require.True(t, errors.As(err, &located))
	assert.Equal(t, model.FieldDataYKeysSecondaryPattern, located.Field)
}
