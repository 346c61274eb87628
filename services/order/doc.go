// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package order checks the internal statement order of UI component functions.
//
// A component body is expected to read top to bottom as:
//
//	useState → custom hook → variable/computed value → handler/method →
//	useEffect → conditional rendering → JSX return
//
// The package has two parts:
//
//   - Classify maps one Statement to a Category (or Unclassified) using a fixed,
//     ordered table of shape rules. The first matching rule wins.
//   - Verify walks the classified statements of one body and reports the first
//     statement whose category ranks below a category already seen.
//
// Check combines both for a single body.
//
// # Statement Model
//
// The package never sees a concrete syntax tree. Front ends (see services/jsx)
// lower each top-level statement of a component body into a Statement value that
// exposes only what the rules read: statement kind, declarators with their
// initializer shape, the callee name of calls, the argument of returns and the
// taken branch of if statements.
//
// # Thread Safety
//
// Everything in this package is pure. Check may be called concurrently for
// different bodies.
package order
