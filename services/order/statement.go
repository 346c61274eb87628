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

// =============================================================================
// STATEMENT MODEL
// =============================================================================

// StatementKind is the syntactic kind of a top-level body statement.
type StatementKind int

const (
	// StatementOther is any statement the rules do not look at (loops, imports,
	// try blocks, comments, ...).
	StatementOther StatementKind = iota

	// StatementDeclaration is a const/let/var declaration.
	StatementDeclaration

	// StatementFunction is a named function declaration.
	StatementFunction

	// StatementExpression is an expression statement.
	StatementExpression

	// StatementIf is an if statement.
	StatementIf

	// StatementReturn is a return statement.
	StatementReturn
)

// String returns the string representation of the kind.
func (k StatementKind) String() string {
	switch k {
	case StatementOther:
		return "other"
	case StatementDeclaration:
		return "declaration"
	case StatementFunction:
		return "function"
	case StatementExpression:
		return "expression"
	case StatementIf:
		return "if"
	case StatementReturn:
		return "return"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ExprKind is the shape of an expression as far as the rules care.
type ExprKind int

const (
	// ExprOther is any expression without a dedicated kind.
	ExprOther ExprKind = iota

	// ExprCall is a call expression.
	ExprCall

	// ExprFunction is an arrow function or a function expression.
	ExprFunction

	// ExprMarkup is a JSX element or fragment.
	ExprMarkup
)

// String returns the string representation of the kind.
func (k ExprKind) String() string {
	switch k {
	case ExprOther:
		return "other"
	case ExprCall:
		return "call"
	case ExprFunction:
		return "function"
	case ExprMarkup:
		return "markup"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Expr is the shape of an expression.
type Expr struct {
	// Kind is the expression shape.
	Kind ExprKind

	// Callee is the identifier name of the called function for ExprCall.
	// Empty when the callee is not a bare identifier (obj.useState(), f()()).
	Callee string
}

// Declarator is one binding of a declaration statement.
type Declarator struct {
	// Name is the bound identifier. Empty for destructuring targets.
	Name string

	// Pattern is true when the target is an array or object pattern.
	Pattern bool

	// Init is the initializer, nil for `let x;`.
	Init *Expr
}

// Position locates a statement in its source file.
type Position struct {
	// Line is the 1-indexed line of the first character.
	Line int `json:"line"`

	// Column is the 1-indexed column of the first character.
	Column int `json:"column"`

	// EndLine is the 1-indexed line of the last character.
	EndLine int `json:"end_line,omitempty"`

	// EndColumn is the 1-indexed column just past the last character.
	EndColumn int `json:"end_column,omitempty"`

	// Offset is the 0-indexed byte offset of the first character.
	Offset int `json:"offset"`
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Statement is the neutral view of one top-level statement of a component body.
//
// Only the fields relevant to Kind are populated:
//
//	| Kind                 | Fields                |
//	|----------------------|-----------------------|
//	| StatementDeclaration | Declarators           |
//	| StatementFunction    | Name                  |
//	| StatementExpression  | Expr                  |
//	| StatementIf          | Branch                |
//	| StatementReturn      | Expr (nil if bare)    |
type Statement struct {
	Kind        StatementKind
	Name        string
	Declarators []Declarator
	Expr        *Expr

	// Branch holds the statements of the taken (consequence) branch. When the
	// branch is not a block it holds that single statement.
	Branch []Statement

	Pos Position
}

// Call is a convenience constructor for a call expression shape.
func Call(callee string) *Expr {
	return &Expr{Kind: ExprCall, Callee: callee}
}

// singleInit returns the initializer of a one-declarator declaration.
func (s *Statement) singleInit() (*Expr, bool) {
	if s.Kind != StatementDeclaration || len(s.Declarators) != 1 {
		return nil, false
	}
	init := s.Declarators[0].Init
	return init, init != nil
}
