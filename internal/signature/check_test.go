package signature

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/astscan"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
)

func TestCheckSignaturesNonPythonYieldsNothing(t *testing.T) {
	issues := CheckSignatures(context.Background(), []byte("fetch('/x')"), issue.LanguageJavaScript, "a.js")
	assert.Nil(t, issues)
}

func TestCheckSignaturesKnownGoodCall(t *testing.T) {
	source := []byte("import requests\nrequests.get('u', timeout=10)\n")
	issues := CheckSignatures(context.Background(), source, issue.LanguagePython, "a.py")
	assert.Empty(t, issues)
}

func TestCheckSignaturesMissingRequiredArg(t *testing.T) {
	source := []byte("import json\njson.dumps()\n")
	issues := CheckSignatures(context.Background(), source, issue.LanguagePython, "a.py")
	require.NotEmpty(t, issues)
	assert.Equal(t, issue.KindMissingRequiredArg, issues[0].Kind)
	assert.Equal(t, 0.8, issues[0].Confidence)
}

func TestCheckSignaturesUnknownCallIsFailOpen(t *testing.T) {
	source := []byte("totally_unknown_module.mystery_call(1, 2, 3)\n")
	issues := CheckSignatures(context.Background(), source, issue.LanguagePython, "a.py")
	assert.Empty(t, issues)
}

func TestValidateSkipsSplats(t *testing.T) {
	call := astscan.FunctionCall{Name: "os.system", HasStarArgs: true}
	sig := &SignatureInfo{Params: []ParamInfo{{Name: "command", Required: true}}}
	assert.Empty(t, Validate(call, sig))
}

func TestValidateTooManyPositional(t *testing.T) {
	call := astscan.FunctionCall{Name: "os.system", PositionalCount: 2}
	sig := &SignatureInfo{Params: []ParamInfo{{Name: "command", Required: true}}}
	errs := Validate(call, sig)
	require.Len(t, errs, 1)
	assert.Equal(t, "wrong_signature", errs[0].kind)
}

func TestValidateUnknownKeyword(t *testing.T) {
	call := astscan.FunctionCall{Name: "os.system", PositionalCount: 1, Keywords: []string{"bogus"}}
	sig := &SignatureInfo{Params: []ParamInfo{{Name: "command", Required: true}}}
	errs := Validate(call, sig)
	require.Len(t, errs, 1)
	assert.Equal(t, "unknown_parameter", errs[0].kind)
}

func TestResolveAliasRewriting(t *testing.T) {
	aliases := map[string]string{"pd": "pandas"}
	sig, ok := Resolve("pd.DataFrame", nil, aliases)
	require.True(t, ok)
	assert.NotNil(t, sig)
}

func TestResolveLocalFallback(t *testing.T) {
	source := []byte("def helper(a, b=2):\n    return a + b\n\nhelper.call(1)\n")
	sig, ok := Resolve("obj.helper", source, nil)
	require.True(t, ok)
	require.Len(t, sig.Params, 2)
	assert.True(t, sig.Params[0].Required)
	assert.False(t, sig.Params[1].Required)
}
