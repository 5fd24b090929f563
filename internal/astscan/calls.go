// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package astscan

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// FunctionCall is a single call site extracted from a Python AST, the
// shared input to both the signature validator (internal/signature) and
// the deprecation checker (internal/deprecation).
type FunctionCall struct {
	// Name is the dotted callee name (e.g. "os.path.join"). Only dotted
	// names are extracted — bare identifiers like "print" or "len" are
	// deliberately skipped to avoid false positives on shadowable locals.
	Name            string
	PositionalCount int
	Keywords        []string
	HasStarArgs     bool
	HasStarKwargs   bool
	// Line is the 0-based line of the callee expression.
	Line int
}

// ExtractCalls walks Python source for `call` nodes and returns every
// checkable (dotted-name) call site. Returns nil on any parser failure.
// The source is always parsed with the Python grammar; signature and
// deprecation checking check the language themselves before calling it.
func ExtractCalls(ctx context.Context, source []byte) []FunctionCall {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil
	}
	defer tree.Close()

	var calls []FunctionCall
	walkCalls(tree.RootNode(), source, &calls)
	return calls
}

func walkCalls(node *sitter.Node, source []byte, calls *[]FunctionCall) {
	if node == nil {
		return
	}

	if node.Type() == "call" {
		if call, ok := parseCall(node, source); ok {
			*calls = append(*calls, call)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkCalls(node.Child(i), source, calls)
	}
}

func parseCall(node *sitter.Node, source []byte) (FunctionCall, bool) {
	funcNode := node.ChildByFieldName("function")
	if funcNode == nil {
		return FunctionCall{}, false
	}

	name := calleeName(funcNode, source)
	if name == "" || !strings.Contains(name, ".") {
		return FunctionCall{}, false
	}

	call := FunctionCall{
		Name: name,
		Line: int(funcNode.StartPoint().Row),
	}

	if argsNode := node.ChildByFieldName("arguments"); argsNode != nil {
		for i := 0; i < int(argsNode.ChildCount()); i++ {
			child := argsNode.Child(i)
			switch child.Type() {
			case "keyword_argument":
				if keyNode := child.ChildByFieldName("name"); keyNode != nil {
					call.Keywords = append(call.Keywords, nodeText(keyNode, source))
				}
			case "list_splat":
				call.HasStarArgs = true
			case "dictionary_splat":
				call.HasStarKwargs = true
			case "(", ")", ",":
				// punctuation, not an argument
			default:
				call.PositionalCount++
			}
		}
	}

	return call, true
}

// calleeName builds the dotted name of a call target, recursing through
// attribute-access chains (e.g. `a.b.c()` → "a.b.c").
func calleeName(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "identifier":
		return nodeText(node, source)
	case "attribute":
		obj := node.ChildByFieldName("object")
		attr := node.ChildByFieldName("attribute")
		if obj == nil || attr == nil {
			return ""
		}
		objName := calleeName(obj, source)
		attrName := nodeText(attr, source)
		if objName == "" {
			return attrName
		}
		return objName + "." + attrName
	default:
		return ""
	}
}
