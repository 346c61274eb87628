// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package jsx is the tree-sitter front end for the order checker.
//
// It parses JavaScript, JSX, TypeScript and TSX sources, discovers component
// functions and lowers their bodies into the statement model of
// services/order.
//
// # Component Discovery
//
// A component is any function with a capitalized name and a block body:
//
//	function Profile() { ... }                 // declaration
//	const Profile = () => { ... }              // arrow binding
//	const Profile = function () { ... }        // function expression binding
//	export default function Profile() { ... }  // default export
//
// Components nested inside other functions are discovered as well. Arrow
// functions with an expression body have nothing to order and are skipped.
//
// # Grammars
//
//	| Extension            | Grammar    |
//	|----------------------|------------|
//	| .js .jsx .mjs .cjs   | javascript |
//	| .tsx                 | tsx        |
//	| .ts .mts .cts        | typescript |
//
// # Usage
//
//	parser := jsx.NewParser()
//	result, err := parser.Parse(ctx, content, "src/Profile.jsx")
//	if err != nil {
//	    return err
//	}
//	for _, c := range result.Components {
//	    if v := c.Check(); v != nil {
//	        fmt.Println(v.Pos(), v.Message())
//	    }
//	}
package jsx
