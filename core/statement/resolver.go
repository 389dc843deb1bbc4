package statement

import (
	"fmt"
	"strings"

	"github.com/asaidimu/go-kente/core/schema"
)

// keyBatchClass is the batch-level classification of primary-key presence
// across all rows of one INSERT. The column list of a multi-row INSERT is
// uniform, so the classification is computed by scanning the full batch before
// any value tuple is emitted.
type keyBatchClass string

const (
	// keyBatchAllNull: no row supplies a key value. The key columns are
	// omitted from the column list and from every value tuple.
	keyBatchAllNull keyBatchClass = "all-null"
	// keyBatchMixed: some rows supply a key value, some do not. The key
	// columns are included; absent values are emitted as the dialect's
	// generate marker, never as a null literal.
	keyBatchMixed keyBatchClass = "mixed"
	// keyBatchAllPresent: every row supplies a key value. The key columns
	// need no special handling.
	keyBatchAllPresent keyBatchClass = "all-present"
)

// AmbiguousKeyError reports a row of a composite-key batch that supplies some
// but not all key components. Such a row cannot be classified and the batch is
// rejected rather than guessed at.
type AmbiguousKeyError struct {
	// Row is the zero-based index of the offending row in the batch.
	Row int
	// Missing names the key components the row does not supply.
	Missing []string
}

func (e *AmbiguousKeyError) Error() string {
	return fmt.Sprintf(
		"row %d supplies only part of the composite primary key: missing %s",
		e.Row, strings.Join(e.Missing, ", "),
	)
}

// hasKeyValue reports whether a row supplies the full primary key. For a
// composite key a row counts as "has a value" only if every component is
// present and non-nil; partial presence is an input-contract violation.
func hasKeyValue(rowIndex int, doc schema.Document, keys []schema.ColumnDescriptor) (bool, error) {
	present := 0
	var missing []string
	for _, key := range keys {
		value, ok := schema.Accessor(key.Name).Get(doc)
		if ok && value != nil {
			present++
		} else {
			missing = append(missing, key.Name)
		}
	}
	if present == 0 {
		return false, nil
	}
	if present < len(keys) {
		return false, &AmbiguousKeyError{Row: rowIndex, Missing: missing}
	}
	return true, nil
}

// classifyKeyBatch scans the full batch once and classifies primary-key
// presence. The returned per-row presence slice is aligned with rows.
func classifyKeyBatch(rows []schema.Document, keys []schema.ColumnDescriptor) (keyBatchClass, []bool, error) {
	presence := make([]bool, len(rows))
	withKey := 0
	for i, row := range rows {
		has, err := hasKeyValue(i, row, keys)
		if err != nil {
			return "", nil, err
		}
		presence[i] = has
		if has {
			withKey++
		}
	}
	switch withKey {
	case 0:
		return keyBatchAllNull, presence, nil
	case len(rows):
		return keyBatchAllPresent, presence, nil
	default:
		return keyBatchMixed, presence, nil
	}
}

// resolveKeyColumns decides whether the primary-key columns appear in the
// INSERT column list. A conflict target that intersects the primary key forces
// inclusion even for an all-null batch, because the ON CONFLICT clause needs
// the column by name; the classification is upgraded to mixed so absent values
// fall back to the generate marker.
func resolveKeyColumns(class keyBatchClass, keys []schema.ColumnDescriptor, conflictTarget []string) (keyBatchClass, bool) {
	if class != keyBatchAllNull {
		return class, true
	}
	for _, target := range conflictTarget {
		for _, key := range keys {
			if key.Name == target {
				return keyBatchMixed, true
			}
		}
	}
	return keyBatchAllNull, false
}
