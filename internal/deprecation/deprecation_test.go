package deprecation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
)

func TestCheckFlagsOsPopen(t *testing.T) {
	source := []byte("import os\nos.popen('ls')\n")
	issues := Check(context.Background(), source, issue.LanguagePython, "a.py")
	require.NotEmpty(t, issues)
	assert.Equal(t, issue.KindDeprecatedAPI, issues[0].Kind)
	assert.Contains(t, issues[0].Suggestion, "subprocess.run()")
	assert.Equal(t, 0.95, issues[0].Confidence)
}

func TestCheckIgnoresNonDeprecatedCalls(t *testing.T) {
	source := []byte("import os\nos.path.join('a', 'b')\n")
	issues := Check(context.Background(), source, issue.LanguagePython, "a.py")
	assert.Empty(t, issues)
}

func TestCheckNonPythonYieldsNothing(t *testing.T) {
	issues := Check(context.Background(), []byte("os.popen('ls')"), issue.LanguageJavaScript, "a.js")
	assert.Empty(t, issues)
}

func TestRulesContainRequiredEntries(t *testing.T) {
	for _, pattern := range []string{
		"os.popen", "os.system", "typing.Dict", "typing.Optional",
		"imp.find_module", "imp.load_module", "unittest.makeSuite",
	} {
		_, ok := Rules[pattern]
		assert.True(t, ok, "missing rule for %s", pattern)
	}
}
