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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// BUILDERS
// =============================================================================

func bind(name string, init *Expr) Statement {
	return Statement{
		Kind:        StatementDeclaration,
		Declarators: []Declarator{{Name: name, Init: init}},
	}
}

func destructure(init *Expr) Statement {
	return Statement{
		Kind:        StatementDeclaration,
		Declarators: []Declarator{{Pattern: true, Init: init}},
	}
}

func bindMany(inits ...*Expr) Statement {
	s := Statement{Kind: StatementDeclaration}
	for _, init := range inits {
		s.Declarators = append(s.Declarators, Declarator{Name: "x", Init: init})
	}
	return s
}

func funcDecl(name string) Statement {
	return Statement{Kind: StatementFunction, Name: name}
}

func exprStmt(e *Expr) Statement {
	return Statement{Kind: StatementExpression, Expr: e}
}

func returnOf(e *Expr) Statement {
	return Statement{Kind: StatementReturn, Expr: e}
}

func ifThen(branch ...Statement) Statement {
	return Statement{Kind: StatementIf, Branch: branch}
}

var (
	markup   = &Expr{Kind: ExprMarkup}
	function = &Expr{Kind: ExprFunction}
	other    = &Expr{Kind: ExprOther}
)

// =============================================================================
// CLASSIFY
// =============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		stmt Statement
		want Category
	}{
		{"useState binding", bind("a", Call("useState")), CategoryState},
		{"useState destructuring", destructure(Call("useState")), CategoryState},
		{"custom hook", bind("b", Call("useCustom")), CategoryCustomHook},
		{"custom hook destructuring", destructure(Call("useQuery")), CategoryCustomHook},
		{"lowercase after use is not a hook", bind("b", Call("user")), CategoryValue},
		{"bare use is not a hook", bind("b", Call("use")), CategoryValue},
		{"useEffect binding is a value", bind("e", Call("useEffect")), CategoryValue},
		{"member callee is a value", bind("a", &Expr{Kind: ExprCall}), CategoryValue},
		{"two declarators with useState", bindMany(Call("useState"), Call("useState")), CategoryValue},
		{"two declarators with hook", bindMany(Call("useCustom"), other), CategoryValue},
		{"effect call", exprStmt(Call("useEffect")), CategoryEffect},
		{"other call statement", exprStmt(Call("console")), Unclassified},
		{"custom hook call statement", exprStmt(Call("useCustom")), Unclassified},
		{"useState call statement", exprStmt(Call("useState")), Unclassified},
		{"function declaration", funcDecl("handle"), CategoryHandler},
		{"arrow binding", bind("handle", function), CategoryHandler},
		{"two function declarators", bindMany(function, function), CategoryValue},
		{"if returning markup", ifThen(returnOf(markup)), CategoryConditional},
		{"if block with markup return after work", ifThen(exprStmt(other), returnOf(markup)), CategoryConditional},
		{"if returning null", ifThen(returnOf(other)), Unclassified},
		{"if bare return", ifThen(returnOf(nil)), Unclassified},
		{"if without return", ifThen(exprStmt(Call("setA"))), Unclassified},
		{"markup return", returnOf(markup), CategoryReturn},
		{"non-markup return", returnOf(other), Unclassified},
		{"bare return", returnOf(nil), Unclassified},
		{"plain value", bind("c", other), CategoryValue},
		{"uninitialized binding", bind("c", nil), CategoryValue},
		{"empty declaration", Statement{Kind: StatementDeclaration}, CategoryValue},
		{"other statement", Statement{Kind: StatementOther}, Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := tt.stmt
			assert.Equal(t, tt.want, Classify(&stmt))
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.Equal(t, Unclassified, Classify(nil))
	assert.Equal(t, "", RuleName(nil))
}

func TestClassify_Deterministic(t *testing.T) {
	stmts := []Statement{
		bind("a", Call("useState")),
		bind("b", Call("useCustom")),
		funcDecl("h"),
		ifThen(returnOf(markup)),
	}
	for i := range stmts {
		first := Classify(&stmts[i])
		for n := 0; n < 3; n++ {
			assert.Equal(t, first, Classify(&stmts[i]))
		}
	}
}

func TestRuleName(t *testing.T) {
	s := bind("a", Call("useState"))
	assert.Equal(t, "state-binding", RuleName(&s))

	s = exprStmt(other)
	assert.Equal(t, "", RuleName(&s))
}

func TestIsCustomHookName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"useCustom", true},
		{"useQ", true},
		{"useState", false},
		{"useEffect", false},
		{"useLayoutEffect", true},
		{"use", false},
		{"used", false},
		{"use_thing", false},
		{"Usefoo", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCustomHookName(tt.name), tt.name)
	}
}

// =============================================================================
// CATEGORY
// =============================================================================

func TestCategory_Table(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 7)
	for i, c := range cats {
		assert.Equal(t, i, c.Rank())
		assert.True(t, c.Valid())
	}

	assert.Equal(t, -1, Unclassified.Rank())
	assert.False(t, Unclassified.Valid())
	assert.Equal(t, "unclassified", Unclassified.String())
	assert.Equal(t, "invalid(42)", Category(42).String())
}

func TestCategory_Labels(t *testing.T) {
	assert.Equal(t, []string{
		"useState",
		"custom hook",
		"variable/computed value",
		"handler/method",
		"useEffect",
		"conditional rendering",
		"JSX return",
	}, ExpectedOrderLabels())

	assert.Equal(t,
		"useState → custom hook → variable/computed value → handler/method → useEffect → conditional rendering → JSX return",
		ExpectedOrder())
}

func TestCategory_TextRoundTrip(t *testing.T) {
	for _, c := range Categories() {
		text, err := c.MarshalText()
		require.NoError(t, err)

		var back Category
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, c, back)
	}

	var c Category
	assert.Error(t, c.UnmarshalText([]byte("nope")))
}
