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

import "fmt"

// Classified is a statement together with its category.
type Classified struct {
	Category  Category
	Statement *Statement
}

// Violation is the first out-of-order statement of a component body.
type Violation struct {
	// Offender is the statement whose category ranks below one already seen.
	Offender Classified

	// Blocker is the earlier statement the offender should have preceded.
	Blocker Classified
}

// Pos returns the source position of the offending statement.
func (v *Violation) Pos() Position {
	if v.Offender.Statement == nil {
		return Position{}
	}
	return v.Offender.Statement.Pos
}

// Current returns the label of the offending category.
func (v *Violation) Current() string {
	return v.Offender.Category.Label()
}

// ShouldBeAfter returns the label of the blocking category.
func (v *Violation) ShouldBeAfter() string {
	return v.Blocker.Category.Label()
}

// ExpectedOrder returns the canonical label sequence.
func (v *Violation) ExpectedOrder() []string {
	return ExpectedOrderLabels()
}

// Message renders the violation for humans.
func (v *Violation) Message() string {
	return fmt.Sprintf(
		"The '%s' block is before a '%s' block. '%s' should come after all '%s' blocks.\nExpected order: %s.",
		v.Current(), v.ShouldBeAfter(), v.Current(), v.ShouldBeAfter(), ExpectedOrder(),
	)
}

// ClassifyBody classifies every statement of a body and drops the
// Unclassified ones, keeping source order.
func ClassifyBody(body []Statement) []Classified {
	out := make([]Classified, 0, len(body))
	for i := range body {
		c := Classify(&body[i])
		if c == Unclassified {
			continue
		}
		out = append(out, Classified{Category: c, Statement: &body[i]})
	}
	return out
}

// Verify finds the first ordering violation in a classified body.
//
// Description:
//
//	Scans entries in source order keeping the highest rank seen so far. The
//	first entry ranking below it is the offender. The blocker is found by a
//	backward scan over the entries before the offender: it is the entry with
//	the smallest rank strictly greater than the offender's, and among entries
//	of that rank the one closest to the offender. Scanning stops at the first
//	violation. Equal ranks never violate.
//
// Inputs:
//
//	entries - Classified statements in source order, Unclassified removed.
//
// Outputs:
//
//	*Violation - The first violation, or nil if the body is in order.
func Verify(entries []Classified) *Violation {
	highest := -1
	for i, entry := range entries {
		rank := entry.Category.Rank()
		if rank < 0 {
			continue
		}
		if rank >= highest {
			highest = rank
			continue
		}

		blocker := -1
		for j := i - 1; j >= 0; j-- {
			prev := entries[j].Category.Rank()
			if prev <= rank {
				continue
			}
			if blocker < 0 || prev < entries[blocker].Category.Rank() {
				blocker = j
			}
		}
		if blocker < 0 {
			// Unreachable: highest > rank implies a higher entry exists.
			return nil
		}
		return &Violation{Offender: entry, Blocker: entries[blocker]}
	}
	return nil
}

// Check classifies and verifies one component body.
//
// Inputs:
//
//	body - The top-level statements of one component function, in order.
//
// Outputs:
//
//	*Violation - The first violation, or nil when the body is conformant.
func Check(body []Statement) *Violation {
	return Verify(ClassifyBody(body))
}
