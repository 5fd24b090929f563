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

	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
)

// ExtractImports collects the root package/module name referenced by each
// import statement in source. For Python this is the first dotted-name
// component (`import pandas.core` and `import pandas as pd` both yield
// "pandas"). For JavaScript/TypeScript it is the string literal import
// target, reduced to its package name: scoped packages (`@scope/name`)
// keep the first two path segments, relative imports (leading `.`) are
// excluded entirely, and everything else keeps the first path segment.
//
// Returns nil on any parser failure.
func ExtractImports(ctx context.Context, source []byte, lang issue.Language) []string {
	grammar := grammarFor(lang)
	if grammar == nil {
		return nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil
	}
	defer tree.Close()

	var imports []string
	switch lang {
	case issue.LanguagePython:
		extractPythonImports(tree.RootNode(), source, &imports)
	case issue.LanguageJavaScript, issue.LanguageTypeScript:
		extractJSImports(tree.RootNode(), source, &imports)
	}
	return imports
}

func extractPythonImports(node *sitter.Node, source []byte, imports *[]string) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "import_statement":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			switch child.Type() {
			case "dotted_name":
				appendPythonRoot(child, source, imports)
			case "aliased_import":
				if name := child.ChildByFieldName("name"); name != nil {
					appendPythonRoot(name, source, imports)
				}
			}
		}
	case "import_from_statement":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Type() == "dotted_name" {
				appendPythonRoot(child, source, imports)
				break
			}
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		extractPythonImports(node.Child(i), source, imports)
	}
}

func appendPythonRoot(dottedName *sitter.Node, source []byte, imports *[]string) {
	text := nodeText(dottedName, source)
	parts := strings.SplitN(text, ".", 2)
	if parts[0] != "" {
		*imports = append(*imports, parts[0])
	}
}

func extractJSImports(node *sitter.Node, source []byte, imports *[]string) {
	if node == nil {
		return
	}

	if node.Type() == "import_statement" {
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Type() != "string" {
				continue
			}
			raw := strings.Trim(nodeText(child, source), "'\"")
			if strings.HasPrefix(raw, "@") {
				parts := strings.SplitN(raw, "/", 3)
				if len(parts) >= 2 {
					*imports = append(*imports, parts[0]+"/"+parts[1])
				}
			} else if !strings.HasPrefix(raw, ".") {
				*imports = append(*imports, strings.SplitN(raw, "/", 2)[0])
			}
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		extractJSImports(node.Child(i), source, imports)
	}
}

// ExtractImportAliases returns the alias→canonical-name mapping for Python
// import statements. Non-Python languages always yield an empty map.
//
// Two shapes are recognized: `import X as Y` maps Y to X; `from X import Y
// as Z` maps Z to "X.Y". Returns an empty (non-nil) map on any parser
// failure so callers can range over it unconditionally.
func ExtractImportAliases(ctx context.Context, source []byte, lang issue.Language) map[string]string {
	aliases := make(map[string]string)
	if lang != issue.LanguagePython {
		return aliases
	}

	grammar := grammarFor(lang)
	if grammar == nil {
		return aliases
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return aliases
	}
	defer tree.Close()

	extractPythonAliases(tree.RootNode(), source, aliases)
	return aliases
}

func extractPythonAliases(node *sitter.Node, source []byte, aliases map[string]string) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "import_statement":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Type() != "aliased_import" {
				continue
			}
			moduleNode := child.ChildByFieldName("name")
			aliasNode := child.ChildByFieldName("alias")
			if moduleNode != nil && aliasNode != nil {
				aliases[nodeText(aliasNode, source)] = nodeText(moduleNode, source)
			}
		}
	case "import_from_statement":
		var moduleName string
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Type() == "dotted_name" {
				moduleName = nodeText(child, source)
				break
			}
		}
		if moduleName != "" {
			for i := 0; i < int(node.ChildCount()); i++ {
				child := node.Child(i)
				if child.Type() != "aliased_import" {
					continue
				}
				nameNode := child.ChildByFieldName("name")
				aliasNode := child.ChildByFieldName("alias")
				if nameNode != nil && aliasNode != nil {
					aliases[nodeText(aliasNode, source)] = moduleName + "." + nodeText(nameNode, source)
				}
			}
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		extractPythonAliases(node.Child(i), source, aliases)
	}
}

func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
