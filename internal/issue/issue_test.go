package issue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityRoundTrip(t *testing.T) {
	cases := []struct {
		sev  Severity
		want string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
	}
	for _, c := range cases {
		data, err := json.Marshal(c.sev)
		require.NoError(t, err)
		assert.Equal(t, `"`+c.want+`"`, string(data))

		var got Severity
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, c.sev, got)
	}
}

func TestSeverityUnmarshalLegacyNumeric(t *testing.T) {
	var s Severity
	require.NoError(t, json.Unmarshal([]byte("1"), &s))
	assert.Equal(t, SeverityWarning, s)
}

func TestParseSeverityUnknownDefaultsToWarning(t *testing.T) {
	assert.Equal(t, SeverityWarning, ParseSeverity("bogus"))
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "syntax_error", KindSyntaxError.String())
	assert.Equal(t, "deprecated_api", KindDeprecatedAPI.String())
	assert.Equal(t, KindSyntaxError, ParseKind("syntax_error"))
}

func TestLanguageUnmarshalUnknown(t *testing.T) {
	var l Language
	require.NoError(t, json.Unmarshal([]byte(`"cobol"`), &l))
	assert.Equal(t, LanguageUnknown, l)
}

func TestValidationResultDerivedCounts(t *testing.T) {
	result := ValidationResult{
		Issues: []Issue{
			{Severity: SeverityError},
			{Severity: SeverityWarning},
			{Severity: SeverityWarning},
			{Severity: SeverityInfo},
		},
	}
	assert.Equal(t, 1, result.ErrorCount())
	assert.Equal(t, 2, result.WarningCount())
}

func TestLLMValidationReportPassed(t *testing.T) {
	assert.True(t, LLMValidationReport{BlocksFailed: 0}.Passed())
	assert.False(t, LLMValidationReport{BlocksFailed: 1}.Passed())
}
