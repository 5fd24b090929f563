package urlfetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRejectsDisallowedSchemes(t *testing.T) {
	cases := []string{
		"ftp://example.com/readme.md",
		"file:///etc/passwd",
		"gopher://example.com",
	}
	for _, u := range cases {
		err := Validate(u)
		assert.Error(t, err, u)
	}
}

func TestValidateRejectsBlockedHosts(t *testing.T) {
	cases := []string{
		"http://localhost/readme.md",
		"http://127.0.0.1/readme.md",
		"http://127.0.0.5:8080/readme.md",
		"http://0.0.0.0/readme.md",
		"http://10.0.0.5/readme.md",
		"http://172.16.0.1/readme.md",
		"http://192.168.1.1/readme.md",
		"http://169.254.169.254/latest/meta-data/",
		"http://[::1]/readme.md",
	}
	for _, u := range cases {
		err := Validate(u)
		assert.ErrorIs(t, err, ErrBlockedHost, u)
	}
}

func TestValidateAllowsPublicHosts(t *testing.T) {
	cases := []string{
		"https://raw.githubusercontent.com/example/repo/main/README.md",
		"http://93.184.216.34/readme.md",
	}
	for _, u := range cases {
		assert.NoError(t, Validate(u), u)
	}
}

func TestValidateRejectsMalformedURL(t *testing.T) {
	err := Validate("://not-a-url")
	assert.Error(t, err)
}
