// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package jsx

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/fe-jhw/reactfc/services/order"
)

// Tree-sitter node types read by discovery and lowering. The javascript, tsx
// and typescript grammars share these names.
const (
	nodeArrowFunction                = "arrow_function"
	nodeCallExpression               = "call_expression"
	nodeComment                      = "comment"
	nodeExportStatement              = "export_statement"
	nodeExpressionStatement          = "expression_statement"
	nodeFunction                     = "function" // function expression in older grammars
	nodeFunctionDeclaration          = "function_declaration"
	nodeFunctionExpression           = "function_expression"
	nodeGeneratorFunction            = "generator_function"
	nodeGeneratorFunctionDeclaration = "generator_function_declaration"
	nodeIdentifier                   = "identifier"
	nodeIfStatement                  = "if_statement"
	nodeJSXElement                   = "jsx_element"
	nodeJSXFragment                  = "jsx_fragment"
	nodeJSXSelfClosingElement        = "jsx_self_closing_element"
	nodeLexicalDeclaration           = "lexical_declaration"
	nodeOptionalChain                = "optional_chain"
	nodeParenthesizedExpression      = "parenthesized_expression"
	nodeReturnStatement              = "return_statement"
	nodeStatementBlock               = "statement_block"
	nodeTemplateString               = "template_string"
	nodeVariableDeclaration          = "variable_declaration"
	nodeVariableDeclarator           = "variable_declarator"
)

// lowerStatement maps one body statement to the neutral statement model.
func lowerStatement(n *sitter.Node, src []byte) order.Statement {
	stmt := order.Statement{Pos: position(n)}

	switch n.Type() {
	case nodeLexicalDeclaration, nodeVariableDeclaration:
		stmt.Kind = order.StatementDeclaration
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child == nil || child.Type() != nodeVariableDeclarator {
				continue
			}
			stmt.Declarators = append(stmt.Declarators, lowerDeclarator(child, src))
		}

	case nodeFunctionDeclaration, nodeGeneratorFunctionDeclaration:
		stmt.Kind = order.StatementFunction
		if name := n.ChildByFieldName("name"); name != nil {
			stmt.Name = name.Content(src)
		}

	case nodeExpressionStatement:
		stmt.Kind = order.StatementExpression
		if expr := firstNamedChild(n); expr != nil {
			stmt.Expr = lowerExpr(expr, src)
		}

	case nodeIfStatement:
		stmt.Kind = order.StatementIf
		if consequence := n.ChildByFieldName("consequence"); consequence != nil {
			if consequence.Type() == nodeStatementBlock {
				stmt.Branch = lowerBlock(consequence, src)
			} else {
				stmt.Branch = []order.Statement{lowerStatement(consequence, src)}
			}
		}

	case nodeReturnStatement:
		stmt.Kind = order.StatementReturn
		if arg := firstNamedChild(n); arg != nil {
			stmt.Expr = lowerExpr(arg, src)
		}

	default:
		stmt.Kind = order.StatementOther
	}

	return stmt
}

// lowerDeclarator maps a variable_declarator.
func lowerDeclarator(n *sitter.Node, src []byte) order.Declarator {
	var d order.Declarator
	if name := n.ChildByFieldName("name"); name != nil {
		if name.Type() == nodeIdentifier {
			d.Name = name.Content(src)
		} else {
			d.Pattern = true
		}
	}
	if value := n.ChildByFieldName("value"); value != nil {
		d.Init = lowerExpr(value, src)
	}
	return d
}

// lowerExpr maps an expression node to its shape. Parentheses are transparent.
func lowerExpr(n *sitter.Node, src []byte) *order.Expr {
	n = unwrapParens(n)

	switch t := n.Type(); {
	case t == nodeCallExpression:
		return lowerCall(n, src)
	case isFunctionValue(t):
		return &order.Expr{Kind: order.ExprFunction}
	case isMarkup(t):
		return &order.Expr{Kind: order.ExprMarkup}
	default:
		return &order.Expr{Kind: order.ExprOther}
	}
}

// lowerCall maps a call_expression. Tagged templates and optional calls are
// not plain calls.
func lowerCall(n *sitter.Node, src []byte) *order.Expr {
	if args := n.ChildByFieldName("arguments"); args != nil && args.Type() == nodeTemplateString {
		return &order.Expr{Kind: order.ExprOther}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil && child.Type() == nodeOptionalChain {
			return &order.Expr{Kind: order.ExprOther}
		}
	}

	expr := &order.Expr{Kind: order.ExprCall}
	if fn := n.ChildByFieldName("function"); fn != nil && fn.Type() == nodeIdentifier {
		expr.Callee = fn.Content(src)
	}
	return expr
}

func isFunctionValue(nodeType string) bool {
	switch nodeType {
	case nodeArrowFunction, nodeFunctionExpression, nodeFunction, nodeGeneratorFunction:
		return true
	}
	return false
}

func isMarkup(nodeType string) bool {
	switch nodeType {
	case nodeJSXElement, nodeJSXSelfClosingElement, nodeJSXFragment:
		return true
	}
	return false
}

// unwrapParens strips any number of enclosing parentheses.
func unwrapParens(n *sitter.Node) *sitter.Node {
	for n.Type() == nodeParenthesizedExpression {
		inner := firstNamedChild(n)
		if inner == nil {
			return n
		}
		n = inner
	}
	return n
}

// firstNamedChild returns the first named child that is not a comment.
func firstNamedChild(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child != nil && child.Type() != nodeComment {
			return child
		}
	}
	return nil
}

// position converts tree-sitter points to 1-indexed positions.
func position(n *sitter.Node) order.Position {
	start, end := n.StartPoint(), n.EndPoint()
	return order.Position{
		Line:      int(start.Row) + 1,
		Column:    int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
		Offset:    int(n.StartByte()),
	}
}
