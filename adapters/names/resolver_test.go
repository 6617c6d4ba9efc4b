package names

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileFallsBack(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)

	assert.Equal(t, "Total debt service (% of GNI)", r.Resolve("DT.TDS.DECT.GN.ZS"))
	assert.True(t, r.Known() > 0)
}

func TestLoad_MappingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.csv")
	content := "Indicator Code,Friendly Name\nXX.ONE,First indicator\nXX.TWO,Second indicator\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Known())
	assert.Equal(t, "First indicator", r.Resolve("XX.ONE"))
}

func TestLoad_MalformedHeadersFail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.csv")
	require.NoError(t, os.WriteFile(path, []byte("code,label\nX,Y\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolve_UnknownCodeIsIdentity(t *testing.T) {
	r := NewResolver(nil)
	assert.Equal(t, "ZZ.NOT.MAPPED", r.Resolve("ZZ.NOT.MAPPED"))
}

func TestLoad_EmptyPathUsesFallback(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "External debt stocks, total (current US$)", r.Resolve("DT.DOD.DECT.CD"))
}

func TestLoad_SkipsBlankRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.csv")
	content := "Indicator Code,Friendly Name\nXX.ONE,First\n,\nXX.TWO,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Known())
}
