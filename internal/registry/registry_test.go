package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/cache"
)

func openTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.Open(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "my-package", NormalizeName("My_Package"))
	assert.Equal(t, "requests", NormalizeName("requests"))
}

func TestPyPIPackageExistsEmptyNameIsFalse(t *testing.T) {
	p := NewPyPI(time.Second, openTestCache(t))
	assert.False(t, p.PackageExists(context.Background(), ""))
	assert.False(t, p.PackageExists(context.Background(), "   "))
}

func TestNPMPackageExistsEmptyNameIsFalse(t *testing.T) {
	n := NewNPM(time.Second, openTestCache(t))
	assert.False(t, n.PackageExists(context.Background(), ""))
}

func TestPyPIPackageExistsUnreachableHostFailsOpen(t *testing.T) {
	p := NewPyPI(50*time.Millisecond, openTestCache(t))
	// The request context's one-nanosecond deadline has passed before the
	// request is sent, so the lookup fails with a context error; fail-open
	// means the call still returns true rather than false.
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	assert.True(t, p.PackageExists(ctx, "some-package-name"))
}

func TestNPMPackageExistsUnreachableHostFailsOpen(t *testing.T) {
	n := NewNPM(50*time.Millisecond, openTestCache(t))
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	assert.True(t, n.PackageExists(ctx, "some-package-name"))
}

func TestPyPIGetPackageInfoOnUnreachableHostIsNil(t *testing.T) {
	p := NewPyPI(50*time.Millisecond, openTestCache(t))
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	assert.Nil(t, p.GetPackageInfo(ctx, "some-package-name"))
}

func TestPyPICachesExistsResult(t *testing.T) {
	c := openTestCache(t)
	p := NewPyPI(time.Second, c)
	c.Set("pypi:exists:cached-pkg", true)
	assert.True(t, p.PackageExists(context.Background(), "cached-pkg"))

	c.Set("pypi:exists:cached-pkg", false)
	assert.False(t, p.PackageExists(context.Background(), "cached-pkg"))
}
