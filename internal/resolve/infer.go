package resolve

import (
	"fmt"
	"regexp"

	"github.com/sourceplane/chasm/internal/model"
)

// InferKeys returns the sample's field names that fully match pattern, in the
// sample's own key order. The result is never nil.
func InferKeys(sample *model.Record, pattern string) ([]string, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pattern %q: %v", model.ErrSchemaValidation, pattern, err)
	}

	keys := make([]string, 0)
	for _, key := range sample.Keys() {
		if re.MatchString(key) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// inferMissing fills every key-list field that no layer set
func inferMissing(cfg *model.ChartConfig, sample *model.Record) ([]string, error) {
	var inferred []string
	for _, f := range model.KeyListFields {
		if current, _ := cfg.KeyList(f.Field); current != nil {
			continue
		}
		pattern, _ := cfg.StringField(f.Pattern)
		keys, err := InferKeys(sample, pattern)
		if err != nil {
			return nil, model.AtField("", f.Pattern, err)
		}
		if _, err := cfg.Set(f.Field, keys); err != nil {
			return nil, err
		}
		inferred = append(inferred, f.Field)
	}
	return inferred, nil
}
