// Package utils holds small conversion helpers shared by the statement
// builders.
package utils

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/asaidimu/go-kente/core/schema"
)

// StructToDocument converts a Go struct into a schema.Document keyed by the
// struct's json tags (or field names when untagged), so plain structs can be
// handed to the insert builder as rows.
//
// The conversion goes through JSON: the struct is marshaled and the bytes are
// unmarshaled into a map. This respects `json:"tag"` annotations and
// `omitempty`, which is what gives structs the same present/absent semantics
// as hand-written documents — an omitted field is absent from the document,
// not present with a nil value. Numeric fields surface as float64 (JSON
// number); the dialect's value preparation handles the widening.
//
// The input must be a struct or a non-nil pointer to one.
func StructToDocument(record any) (schema.Document, error) {
	val := reflect.ValueOf(record)
	if !val.IsValid() {
		return nil, fmt.Errorf("input record cannot be nil")
	}
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("input record cannot be a nil pointer to a struct")
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input record must be a struct or a pointer to a struct, got %s", val.Kind())
	}

	jsonBytes, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize record: %w", err)
	}

	var doc schema.Document
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert record to document: %w", err)
	}
	return doc, nil
}
