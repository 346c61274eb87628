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

// discover walks the whole tree in pre-order and collects component functions.
//
// A component is:
//   - a function declaration with a capitalized name and a block body
//   - a declarator binding a capitalized identifier to an arrow function or
//     function expression with a block body (every declarator is considered)
//   - a named function expression directly under `export default`
//
// Nested components are discovered too; each is checked on its own body.
func discover(root *sitter.Node, src []byte) []Component {
	components := make([]Component, 0)

	var walk func(n *sitter.Node, parentType string)
	walk = func(n *sitter.Node, parentType string) {
		switch n.Type() {
		case nodeFunctionDeclaration, nodeGeneratorFunctionDeclaration:
			if c, ok := functionComponent(n, src); ok {
				components = append(components, c)
			}

		case nodeFunctionExpression, nodeFunction:
			if parentType == nodeExportStatement {
				if c, ok := functionComponent(n, src); ok {
					components = append(components, c)
				}
			}

		case nodeLexicalDeclaration, nodeVariableDeclaration:
			for i := 0; i < int(n.NamedChildCount()); i++ {
				decl := n.NamedChild(i)
				if decl == nil || decl.Type() != nodeVariableDeclarator {
					continue
				}
				if c, ok := bindingComponent(decl, src); ok {
					components = append(components, c)
				}
			}
		}

		for i := 0; i < int(n.NamedChildCount()); i++ {
			if child := n.NamedChild(i); child != nil {
				walk(child, n.Type())
			}
		}
	}

	walk(root, "")
	return components
}

// functionComponent builds a Component from a named function node.
func functionComponent(fn *sitter.Node, src []byte) (Component, bool) {
	name := fn.ChildByFieldName("name")
	if name == nil || name.Type() != nodeIdentifier {
		return Component{}, false
	}
	return newComponent(name.Content(src), fn, fn, src)
}

// bindingComponent builds a Component from `const Name = () => { ... }`.
func bindingComponent(decl *sitter.Node, src []byte) (Component, bool) {
	name := decl.ChildByFieldName("name")
	if name == nil || name.Type() != nodeIdentifier {
		return Component{}, false
	}
	value := decl.ChildByFieldName("value")
	if value == nil {
		return Component{}, false
	}
	value = unwrapParens(value)
	if !isFunctionValue(value.Type()) {
		return Component{}, false
	}
	return newComponent(name.Content(src), decl, value, src)
}

// newComponent lowers the block body of fn when name is capitalized.
func newComponent(name string, at, fn *sitter.Node, src []byte) (Component, bool) {
	if !IsComponentName(name) {
		return Component{}, false
	}
	body := fn.ChildByFieldName("body")
	if body == nil || body.Type() != nodeStatementBlock {
		return Component{}, false
	}
	return Component{
		Name: name,
		Pos:  position(at),
		Body: lowerBlock(body, src),
	}, true
}

// IsComponentName reports whether name starts with an ASCII uppercase letter.
func IsComponentName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

// lowerBlock lowers the statements of a statement_block.
func lowerBlock(block *sitter.Node, src []byte) []order.Statement {
	count := int(block.NamedChildCount())
	stmts := make([]order.Statement, 0, count)
	for i := 0; i < count; i++ {
		child := block.NamedChild(i)
		if child == nil || child.Type() == nodeComment {
			continue
		}
		stmts = append(stmts, lowerStatement(child, src))
	}
	return stmts
}
