package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"", language.English},
		{"C", language.English},
		{"en_US.UTF-8", language.English},
		{"zh_CN.UTF-8", language.Chinese},
		{"fr-FR", language.English},
		{"not a locale!", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.locale))
		})
	}
}

func TestCatalog_Lookup(t *testing.T) {
	en, err := New("en")
	require.NoError(t, err)
	zh, err := New("zh_CN")
	require.NoError(t, err)

	assert.Equal(t, "Stop", en.T("global.stop"))
	assert.Equal(t, "停止", zh.T("global.stop"))
	assert.Equal(t, language.Chinese, zh.Language())

	// Unknown keys come back verbatim.
	assert.Equal(t, "no.such.key", en.T("no.such.key"))
	assert.Equal(t, "Created 3 days ago", en.Tf("ws.createdAt", "3 days ago"))
}

func TestCatalog_NilIsKeyEcho(t *testing.T) {
	var c *Catalog
	assert.Equal(t, "global.ok", c.T("global.ok"))
}

// Every key in the fallback catalog must exist in every other catalog so a
// language switch never shows raw keys.
func TestCatalogs_HaveSameKeys(t *testing.T) {
	base := readCatalog(t, "locales/en.yaml")
	for tag, name := range catalogFiles {
		if tag == language.English {
			continue
		}
		other := readCatalog(t, name)
		for k := range base {
			assert.Contains(t, other, k, "%s missing key", name)
		}
		for k := range other {
			assert.Contains(t, base, k, "%s has extra key", name)
		}
	}
}

func readCatalog(t *testing.T, name string) map[string]string {
	t.Helper()
	data, err := localeFS.ReadFile(name)
	require.NoError(t, err)
	out := map[string]string{}
	require.NoError(t, yaml.Unmarshal(data, &out))
	return out
}
