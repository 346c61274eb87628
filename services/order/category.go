// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package order

import (
	"fmt"
	"strings"
)

// Category is the semantic block a component statement belongs to.
//
// The numeric value of a classified Category is its canonical rank.
type Category int

const (
	// Unclassified marks statements that take no part in ordering.
	Unclassified Category = iota - 1

	// CategoryState is a binding initialized by useState(...).
	CategoryState

	// CategoryCustomHook is a binding initialized by a custom useXxx(...) hook.
	CategoryCustomHook

	// CategoryValue is any other binding (variables, computed values).
	CategoryValue

	// CategoryHandler is a named function or a binding to a function value.
	CategoryHandler

	// CategoryEffect is a bare useEffect(...) call.
	CategoryEffect

	// CategoryConditional is an if statement that returns markup.
	CategoryConditional

	// CategoryReturn is the return statement that yields markup.
	CategoryReturn
)

// categoryInfo is one row of the canonical order table.
type categoryInfo struct {
	key   string
	label string
}

// canonical is the canonical order, indexed by rank.
var canonical = [...]categoryInfo{
	CategoryState:       {key: "useState", label: "useState"},
	CategoryCustomHook:  {key: "customHook", label: "custom hook"},
	CategoryValue:       {key: "variable", label: "variable/computed value"},
	CategoryHandler:     {key: "handler", label: "handler/method"},
	CategoryEffect:      {key: "useEffect", label: "useEffect"},
	CategoryConditional: {key: "conditional", label: "conditional rendering"},
	CategoryReturn:      {key: "return", label: "JSX return"},
}

// OrderSeparator joins labels in the expected order message.
const OrderSeparator = " → "

// Categories returns the classified categories in canonical order.
func Categories() []Category {
	out := make([]Category, len(canonical))
	for i := range canonical {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c is one of the seven classified categories.
func (c Category) Valid() bool {
	return c >= CategoryState && int(c) < len(canonical)
}

// Rank returns the canonical rank of c, or -1 for Unclassified.
func (c Category) Rank() int {
	if !c.Valid() {
		return -1
	}
	return int(c)
}

// String returns the stable key of the category (e.g. "customHook").
func (c Category) String() string {
	if !c.Valid() {
		if c == Unclassified {
			return "unclassified"
		}
		return fmt.Sprintf("invalid(%d)", int(c))
	}
	return canonical[c].key
}

// Label returns the human-readable name used in messages (e.g. "custom hook").
func (c Category) Label() string {
	if !c.Valid() {
		return c.String()
	}
	return canonical[c].label
}

// ParseCategory maps a stable key back to its Category.
func ParseCategory(key string) (Category, error) {
	for i, info := range canonical {
		if info.key == key {
			return Category(i), nil
		}
	}
	return Unclassified, fmt.Errorf("unknown category %q", key)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ExpectedOrderLabels returns the labels of all categories in canonical order.
func ExpectedOrderLabels() []string {
	labels := make([]string, len(canonical))
	for i, info := range canonical {
		labels[i] = info.label
	}
	return labels
}

// ExpectedOrder renders the canonical order as a single line.
func ExpectedOrder() string {
	return strings.Join(ExpectedOrderLabels(), OrderSeparator)
}
