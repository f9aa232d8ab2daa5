package fetcher

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/voyagen/dramarail/internal/models"
)

// Shape identifies which envelope variant carried the list.
type Shape int

// The API is not shape-consistent across endpoints. These are the known
// variants, in the order ExtractList checks them.
const (
	ShapeNone Shape = iota
	ShapeArray
	ShapeSearchList
	ShapeRankList
	ShapeList
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeSearchList:
		return "searchList"
	case ShapeRankList:
		return "rankList"
	case ShapeList:
		return "list"
	default:
		return "none"
	}
}

// fieldShapes is the precedence order for object payloads.
var fieldShapes = []struct {
	field string
	shape Shape
}{
	{"searchList", ShapeSearchList},
	{"rankList", ShapeRankList},
	{"list", ShapeList},
}

// DetectShape returns the first recognized array in data and its variant.
// It does not merge candidates: the first array found wins.
func DetectShape(data json.RawMessage) (Shape, json.RawMessage) {
	data = bytes.TrimSpace(data)
	if isArray(data) {
		return ShapeArray, data
	}
	if len(data) == 0 || data[0] != '{' {
		return ShapeNone, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return ShapeNone, nil
	}
	for _, fs := range fieldShapes {
		if raw, ok := fields[fs.field]; ok && isArray(bytes.TrimSpace(raw)) {
			return fs.shape, raw
		}
	}
	return ShapeNone, nil
}

// ExtractList decodes the list carried by data. A payload with no recognized
// array yields an empty list and ShapeNone, which is not an error.
// Elements are decoded one by one; an element that does not fit ContentItem
// is counted in Skipped and left out, so one odd entry cannot empty a rail.
func ExtractList(data json.RawMessage) (Result, error) {
	shape, raw := DetectShape(data)
	res := Result{Items: []models.ContentItem{}, Shape: shape}
	if shape == ShapeNone {
		return res, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return res, fmt.Errorf("%w: %s: %v", ErrMalformed, shape, err)
	}
	for _, elem := range elems {
		var item models.ContentItem
		if err := json.Unmarshal(elem, &item); err != nil {
			res.Skipped++
			continue
		}
		res.Items = append(res.Items, item)
	}
	return res, nil
}

func isArray(b []byte) bool {
	return len(b) > 0 && b[0] == '['
}

// truthy mirrors a loose truthiness check on the envelope's success flag:
// absent, null, false, 0 and "" are falsy.
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch raw[0] {
	case 't':
		return true
	case 'f', 'n':
		return false
	case '"':
		return len(raw) > 2
	case '[', '{':
		return true
	default:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return false
		}
		return f != 0
	}
}
