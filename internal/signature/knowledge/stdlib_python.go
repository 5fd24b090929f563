// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package knowledge is the bundled static signature table the primary
// resolution tier in internal/signature looks up. Since Go cannot import
// and introspect a Python module at runtime, the table is hand-authored
// instead, covering a selection of functions from the safe-module stdlib
// allowlist plus a handful of third-party APIs that LLMs commonly
// hallucinate call shapes for.
//
// The table shape — a plain Go map keyed by dotted name — generalizes a
// "confusable library" rule table into a "known call signature" one.
package knowledge

import "github.com/tranhoangtu-it/hallucination-firewall/internal/signature"

// required builds a ParamInfo with Required true.
func required(name string) signature.ParamInfo {
	return signature.ParamInfo{Name: name, Required: true, Kind: "POSITIONAL_OR_KEYWORD"}
}

// optional builds a ParamInfo with Required false.
func optional(name string) signature.ParamInfo {
	return signature.ParamInfo{Name: name, Required: false, Kind: "POSITIONAL_OR_KEYWORD"}
}

// SafeModules is the fixed allowlist of standard-library modules this
// table is permitted to cover directly. Third-party entries below
// (requests, pandas) are bundled separately as "commonly-hallucinated API"
// knowledge, not because they are unsafe but because they are outside the
// stdlib the allowlist describes.
var SafeModules = map[string]bool{
	"os": true, "os.path": true, "sys": true, "json": true, "re": true,
	"math": true, "datetime": true, "pathlib": true, "collections": true,
	"itertools": true, "functools": true, "typing": true, "io": true,
	"csv": true, "hashlib": true, "base64": true, "urllib": true,
	"urllib.parse": true, "shutil": true, "tempfile": true, "logging": true,
	"string": true, "textwrap": true,
}

// Signatures maps a fully-qualified dotted call name to its known
// signature. A miss here (and in the local-AST fallback) means "unknown
// signature" — the validator must then be skipped entirely (fail-open).
var Signatures = map[string]signature.SignatureInfo{
	// os / os.path — allowlisted stdlib
	"os.popen":    {Params: []signature.ParamInfo{required("cmd"), optional("mode"), optional("buffering")}},
	"os.system":   {Params: []signature.ParamInfo{required("command")}},
	"os.path.join": {Params: []signature.ParamInfo{required("path")}, HasVarPositional: true},
	"os.getenv":   {Params: []signature.ParamInfo{required("key"), optional("default")}},
	"os.makedirs": {Params: []signature.ParamInfo{required("name"), optional("mode"), optional("exist_ok")}},

	// json
	"json.loads": {Params: []signature.ParamInfo{required("s")}, HasVarKeyword: true},
	"json.dumps": {Params: []signature.ParamInfo{required("obj")}, HasVarKeyword: true},
	"json.load":  {Params: []signature.ParamInfo{required("fp")}, HasVarKeyword: true},
	"json.dump":  {Params: []signature.ParamInfo{required("obj"), required("fp")}, HasVarKeyword: true},

	// re
	"re.match":   {Params: []signature.ParamInfo{required("pattern"), required("string"), optional("flags")}},
	"re.search":  {Params: []signature.ParamInfo{required("pattern"), required("string"), optional("flags")}},
	"re.sub":     {Params: []signature.ParamInfo{required("pattern"), required("repl"), required("string"), optional("count"), optional("flags")}},
	"re.compile": {Params: []signature.ParamInfo{required("pattern"), optional("flags")}},

	// hashlib
	"hashlib.sha256": {Params: []signature.ParamInfo{optional("data")}},
	"hashlib.md5":    {Params: []signature.ParamInfo{optional("data")}},

	// pathlib.Path — modeled as a free function set (constructor calls)
	"pathlib.Path": {HasVarPositional: true},

	// datetime
	"datetime.datetime.now": {Params: []signature.ParamInfo{optional("tz")}},
	"datetime.datetime.strptime": {Params: []signature.ParamInfo{required("date_string"), required("format")}},

	// urllib.parse
	"urllib.parse.urlparse": {Params: []signature.ParamInfo{required("url"), optional("scheme"), optional("allow_fragments")}},
	"urllib.parse.urlencode": {Params: []signature.ParamInfo{required("query"), optional("doseq")}},

	// logging
	"logging.getLogger": {Params: []signature.ParamInfo{optional("name")}},
	"logging.basicConfig": {HasVarKeyword: true},

	// commonly-hallucinated third-party APIs (names LLMs invent call
	// shapes for most often — `requests` and `pandas`)
	"requests.get":  {Params: []signature.ParamInfo{required("url")}, HasVarKeyword: true},
	"requests.post": {Params: []signature.ParamInfo{required("url")}, HasVarKeyword: true},
	"requests.put":  {Params: []signature.ParamInfo{required("url")}, HasVarKeyword: true},
	"requests.delete": {Params: []signature.ParamInfo{required("url")}, HasVarKeyword: true},
	"pandas.DataFrame": {Params: []signature.ParamInfo{optional("data"), optional("index"), optional("columns"), optional("dtype"), optional("copy")}},
	"pandas.read_csv":  {Params: []signature.ParamInfo{required("filepath_or_buffer")}, HasVarKeyword: true},
	"pandas.concat":    {Params: []signature.ParamInfo{required("objs")}, HasVarKeyword: true},
}
