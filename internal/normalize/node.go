// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package normalize

import (
	"strconv"

	"github.com/goccy/go-json"
)

// Node wraps a decoded JSON value (nil, bool, float64, string, []any, or
// map[string]any) and provides safe traversal over trees of unknown shape.
// Every accessor tolerates absent or mismatched values, so deep optional
// paths read as one chain instead of repeated presence checks:
//
//	id := item.Path("pal", "sku", "id").Text()
//
// The zero Node represents an absent value.
type Node struct {
	value  any
	exists bool
}

// parseDocument decodes raw JSON into a root Node.
func parseDocument(data []byte) (Node, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Node{}, err
	}
	return Node{value: v, exists: true}, nil
}

// nodeOf wraps an already-decoded JSON value.
func nodeOf(v any) Node {
	return Node{value: v, exists: true}
}

// Exists reports whether the node holds a value (which may be JSON null).
func (n Node) Exists() bool {
	return n.exists
}

// Value returns the underlying decoded value, or nil for an absent node.
func (n Node) Value() any {
	if !n.exists {
		return nil
	}
	return n.value
}

// Field returns the named member of an object node. Absent for non-objects
// and missing keys.
func (n Node) Field(key string) Node {
	obj, ok := n.value.(map[string]any)
	if !n.exists || !ok {
		return Node{}
	}
	v, ok := obj[key]
	if !ok {
		return Node{}
	}
	return Node{value: v, exists: true}
}

// Path follows a chain of object members.
func (n Node) Path(keys ...string) Node {
	cur := n
	for _, key := range keys {
		cur = cur.Field(key)
	}
	return cur
}

// Index returns the i-th element of an array node.
func (n Node) Index(i int) Node {
	arr, ok := n.value.([]any)
	if !n.exists || !ok || i < 0 || i >= len(arr) {
		return Node{}
	}
	return Node{value: arr[i], exists: true}
}

// Array returns the elements of an array node.
func (n Node) Array() ([]Node, bool) {
	arr, ok := n.value.([]any)
	if !n.exists || !ok {
		return nil, false
	}
	nodes := make([]Node, len(arr))
	for i, v := range arr {
		nodes[i] = Node{value: v, exists: true}
	}
	return nodes, true
}

// IsObject reports whether the node holds a JSON object.
func (n Node) IsObject() bool {
	_, ok := n.value.(map[string]any)
	return n.exists && ok
}

// FirstOf returns the first of the given keys present on an object node,
// in order. Presence decides, not the value: a key holding null or an
// empty string still wins over later keys, matching ordered-fallback
// extraction semantics.
func (n Node) FirstOf(keys ...string) Node {
	obj, ok := n.value.(map[string]any)
	if !n.exists || !ok {
		return Node{}
	}
	for _, key := range keys {
		if v, present := obj[key]; present {
			return Node{value: v, exists: true}
		}
	}
	return Node{}
}

// Text renders a scalar node as a string: strings pass through, numbers
// format without a trailing fraction for integral values, booleans render
// as "true"/"false". Absent nodes, nulls, arrays, and objects render as
// the empty string, which callers treat as "missing".
func (n Node) Text() string {
	if !n.exists {
		return ""
	}
	switch v := n.value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Float returns the numeric value of a number node.
func (n Node) Float() (float64, bool) {
	v, ok := n.value.(float64)
	if !n.exists || !ok {
		return 0, false
	}
	return v, true
}
