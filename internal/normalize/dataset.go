package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sourceplane/chasm/internal/model"
)

// Dataset checks that every record carries the same key set as the first one
func Dataset(data model.Dataset) error {
	first := data.First()
	if first == nil {
		return nil
	}

	for i, rec := range data[1:] {
		if rec == nil {
			return fmt.Errorf("%w: record %d is empty", model.ErrInconsistentRecordShape, i+1)
		}
		if !first.SameShape(rec) {
			return fmt.Errorf("%w: record %d has keys [%s], record 0 has [%s]",
				model.ErrInconsistentRecordShape, i+1, keyList(rec), keyList(first))
		}
	}
	return nil
}

func keyList(rec *model.Record) string {
	keys := rec.Keys()
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
