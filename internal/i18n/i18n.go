// Package i18n looks up translated UI strings from embedded YAML catalogs.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// supported lists catalog languages; the first entry is the fallback.
var supported = []language.Tag{language.English, language.Chinese}

var catalogFiles = map[language.Tag]string{
	language.English: "locales/en.yaml",
	language.Chinese: "locales/zh.yaml",
}

var matcher = language.NewMatcher(supported)

// Translator is the lookup contract consumed by other packages.
type Translator interface {
	T(key string) string
	Tf(key string, args ...any) string
}

// Catalog holds the messages for one negotiated language.
// Lookups are pure and safe for concurrent use.
type Catalog struct {
	lang     language.Tag
	messages map[string]string
	fallback map[string]string
}

// Ensure Catalog implements Translator.
var _ Translator = (*Catalog)(nil)

// New loads the catalog that best matches locale ("zh_CN.UTF-8", "en-US", ...).
// An empty or unparseable locale selects English.
func New(locale string) (*Catalog, error) {
	tag := Match(locale)
	fallback, err := load(language.English)
	if err != nil {
		return nil, err
	}
	msgs := fallback
	if tag != language.English {
		msgs, err = load(tag)
		if err != nil {
			return nil, err
		}
	}
	return &Catalog{lang: tag, messages: msgs, fallback: fallback}, nil
}

// Default returns the English catalog. The embedded catalogs are part of the
// binary, so a load failure is a build defect.
func Default() *Catalog {
	c, err := New("")
	if err != nil {
		panic(fmt.Sprintf("i18n: embedded catalog: %v", err))
	}
	return c
}

// Match negotiates the supported language for a locale string.
func Match(locale string) language.Tag {
	locale = normalizeLocale(locale)
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// normalizeLocale turns POSIX locale names into BCP 47.
// "zh_CN.UTF-8" -> "zh-CN"; "C" and "POSIX" -> "".
func normalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}

func load(tag language.Tag) (map[string]string, error) {
	name, ok := catalogFiles[tag]
	if !ok {
		return nil, fmt.Errorf("no catalog for %s", tag)
	}
	data, err := localeFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", name, err)
	}
	msgs := make(map[string]string)
	if err := yaml.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", name, err)
	}
	return msgs, nil
}

// Language returns the negotiated language.
func (c *Catalog) Language() language.Tag {
	return c.lang
}

// T returns the message for key, falling back to English and then to the key.
func (c *Catalog) T(key string) string {
	if c == nil {
		return key
	}
	if m, ok := c.messages[key]; ok {
		return m
	}
	if m, ok := c.fallback[key]; ok {
		return m
	}
	return key
}

// Tf formats the message for key with args.
func (c *Catalog) Tf(key string, args ...any) string {
	return fmt.Sprintf(c.T(key), args...)
}
