// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package lint runs the component statement-order rule over files.
//
// The package turns order violations into lint issues, applies a severity
// policy and fans work out across files:
//
//	Path → Read → Cache? → Parse (jsx) → Check (order) → Policy → LintResult
//
// # Rule
//
// There is one rule, RuleOrder ("reactfc/order"). Each component yields at
// most one issue, located at the first statement that breaks the canonical
// order.
//
// # Severity Policy
//
//	| Config value   | Severity | Fails run |
//	|----------------|----------|-----------|
//	| error (default)| Error    | yes       |
//	| warn           | Warning  | no        |
//	| info           | Info     | no        |
//	| off            | dropped  | no        |
//
// # Caching
//
// With WithCache, findings are stored by sha256 of the content, the grammar
// and RuleVersion. Policy is applied after lookup.
//
// # Usage
//
//	runner := lint.NewRunner(lint.WithWorkers(8))
//
//	results, err := runner.LintDirectory(ctx, "src")
//	if err != nil {
//	    // Walk failed or ctx canceled
//	}
//	for _, r := range results {
//	    if !r.Valid {
//	        // File has error-severity issues or could not be checked
//	    }
//	}
//
// # Thread Safety
//
// Runner is safe for concurrent use.
package lint
