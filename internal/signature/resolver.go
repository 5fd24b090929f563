// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package signature

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/signature/knowledge"
)

// Resolve looks up the signature for a dotted call name found in source.
// It first rewrites the call's leading segment through aliases (e.g.
// "pd.DataFrame" → "pandas.DataFrame" when aliases["pd"] == "pandas"),
// then tries the bundled knowledge table, then falls back to a local-AST
// rescan of source for a matching function/class definition.
//
// Returns (nil, false) when the signature is unknown — callers must treat
// this as fail-open and emit no issue, never a false positive.
func Resolve(name string, source []byte, aliases map[string]string) (*SignatureInfo, bool) {
	resolved := rewriteAlias(name, aliases)

	if sig, ok := knowledge.Signatures[resolved]; ok {
		return toSignatureInfo(sig), true
	}

	return localDefinitionSignature(resolved, source)
}

func rewriteAlias(name string, aliases map[string]string) string {
	segments := strings.SplitN(name, ".", 2)
	if target, ok := aliases[segments[0]]; ok {
		if len(segments) == 2 {
			return target + "." + segments[1]
		}
		return target
	}
	return name
}

func toSignatureInfo(sig SignatureInfo) *SignatureInfo {
	cp := sig
	cp.Params = append([]ParamInfo(nil), sig.Params...)
	return &cp
}

// localDefinitionSignature re-scans source for a `function_definition` or
// the constructor (`__init__`) of a `class_definition` whose name matches
// the final dotted segment of name, converting its `parameters` node into
// a SignatureInfo directly. Since the AST is already in hand, no actual
// module import/reflection step is needed for locally defined functions.
func localDefinitionSignature(name string, source []byte) (*SignatureInfo, bool) {
	segments := strings.Split(name, ".")
	target := segments[len(segments)-1]

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, false
	}
	defer tree.Close()

	return findLocalSignature(tree.RootNode(), source, target)
}

func findLocalSignature(node *sitter.Node, source []byte, target string) (*SignatureInfo, bool) {
	if node == nil {
		return nil, false
	}

	if node.Type() == "function_definition" {
		nameNode := node.ChildByFieldName("name")
		if nameNode != nil && textOf(nameNode, source) == target {
			return paramsToSignature(node.ChildByFieldName("parameters"), source), true
		}
	}

	if node.Type() == "class_definition" {
		nameNode := node.ChildByFieldName("name")
		body := node.ChildByFieldName("body")
		if nameNode != nil && body != nil && textOf(nameNode, source) == target {
			for i := 0; i < int(body.ChildCount()); i++ {
				method := body.Child(i)
				if method.Type() != "function_definition" {
					continue
				}
				if methodName := method.ChildByFieldName("name"); methodName != nil && textOf(methodName, source) == "__init__" {
					return paramsToSignature(method.ChildByFieldName("parameters"), source), true
				}
			}
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		if sig, ok := findLocalSignature(node.Child(i), source, target); ok {
			return sig, true
		}
	}
	return nil, false
}

func paramsToSignature(paramsNode *sitter.Node, source []byte) *SignatureInfo {
	sig := &SignatureInfo{}
	if paramsNode == nil {
		return sig
	}

	for i := 0; i < int(paramsNode.ChildCount()); i++ {
		child := paramsNode.Child(i)
		switch child.Type() {
		case "identifier":
			name := textOf(child, source)
			if name == "self" {
				continue
			}
			sig.Params = append(sig.Params, ParamInfo{Name: name, Required: true, Kind: "POSITIONAL_OR_KEYWORD"})
		case "default_parameter", "typed_default_parameter":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				name := textOf(nameNode, source)
				if name == "self" {
					continue
				}
				sig.Params = append(sig.Params, ParamInfo{Name: name, Required: false, Kind: "POSITIONAL_OR_KEYWORD"})
			}
		case "typed_parameter":
			name := textOf(child, source)
			if name == "self" {
				continue
			}
			sig.Params = append(sig.Params, ParamInfo{Name: strings.SplitN(name, ":", 2)[0], Required: true, Kind: "POSITIONAL_OR_KEYWORD"})
		case "list_splat_pattern":
			sig.HasVarPositional = true
		case "dictionary_splat_pattern":
			sig.HasVarKeyword = true
		}
	}
	return sig
}

func textOf(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
