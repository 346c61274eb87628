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

const (
	hookState  = "useState"
	hookEffect = "useEffect"
)

// rule pairs a shape predicate with the category it assigns.
type rule struct {
	name     string
	category Category
	match    func(s *Statement) bool
}

// rules is evaluated top to bottom and the first match wins. Shapes overlap
// (a useState binding is also a plain binding), so the order is significant.
var rules = []rule{
	{name: "state-binding", category: CategoryState, match: isStateBinding},
	{name: "custom-hook-binding", category: CategoryCustomHook, match: isCustomHookBinding},
	{name: "effect-call", category: CategoryEffect, match: isEffectCall},
	{name: "handler", category: CategoryHandler, match: isHandler},
	{name: "conditional-return", category: CategoryConditional, match: isConditionalReturn},
	{name: "markup-return", category: CategoryReturn, match: isMarkupReturn},
	{name: "plain-binding", category: CategoryValue, match: isDeclaration},
}

// Classify returns the category of a single statement.
//
// Description:
//
//	Applies the rule table in priority order and returns the category of the
//	first matching rule, or Unclassified when none match. Only the syntactic
//	shape of s is read; the result never depends on surrounding statements.
//
// Inputs:
//
//	s - The statement to classify. A nil statement is Unclassified.
//
// Outputs:
//
//	Category - The assigned category or Unclassified.
func Classify(s *Statement) Category {
	if s == nil {
		return Unclassified
	}
	for _, r := range rules {
		if r.match(s) {
			return r.category
		}
	}
	return Unclassified
}

// RuleName returns the name of the rule that classifies s, or "" if none does.
func RuleName(s *Statement) string {
	if s == nil {
		return ""
	}
	for _, r := range rules {
		if r.match(s) {
			return r.name
		}
	}
	return ""
}

func isStateBinding(s *Statement) bool {
	init, ok := s.singleInit()
	return ok && init.Kind == ExprCall && init.Callee == hookState
}

func isCustomHookBinding(s *Statement) bool {
	init, ok := s.singleInit()
	if !ok || init.Kind != ExprCall {
		return false
	}
	return IsCustomHookName(init.Callee)
}

func isEffectCall(s *Statement) bool {
	return s.Kind == StatementExpression &&
		s.Expr != nil &&
		s.Expr.Kind == ExprCall &&
		s.Expr.Callee == hookEffect
}

func isHandler(s *Statement) bool {
	if s.Kind == StatementFunction {
		return true
	}
	init, ok := s.singleInit()
	return ok && init.Kind == ExprFunction
}

func isConditionalReturn(s *Statement) bool {
	if s.Kind != StatementIf {
		return false
	}
	for i := range s.Branch {
		if isMarkupReturn(&s.Branch[i]) {
			return true
		}
	}
	return false
}

func isMarkupReturn(s *Statement) bool {
	return s.Kind == StatementReturn && s.Expr != nil && s.Expr.Kind == ExprMarkup
}

func isDeclaration(s *Statement) bool {
	return s.Kind == StatementDeclaration
}

// IsCustomHookName reports whether name looks like a custom hook: "use"
// followed by an ASCII uppercase letter, other than useState and useEffect.
func IsCustomHookName(name string) bool {
	if name == hookState || name == hookEffect {
		return false
	}
	if len(name) < 4 || name[:3] != "use" {
		return false
	}
	return name[3] >= 'A' && name[3] <= 'Z'
}
