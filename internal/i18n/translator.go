package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message codes to localized strings. Catalogs are loaded
// once at startup and are read-only afterwards.
type Translator struct {
	fallback string
	catalogs map[string]map[string]string
}

// NewTranslator loads all embedded locale catalogs. The fallback locale must
// have a catalog; it backs every unknown locale and missing code.
func NewTranslator(fallback string) (*Translator, error) {
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	catalogs := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", entry.Name(), err)
		}
		catalog := map[string]string{}
		if err := json.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", entry.Name(), err)
		}
		locale := strings.TrimSuffix(entry.Name(), ".json")
		catalogs[locale] = catalog
	}

	if _, ok := catalogs[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %q has no catalog", fallback)
	}

	return &Translator{fallback: fallback, catalogs: catalogs}, nil
}

// Translate returns the localized string for the code, falling back to the
// baseline locale when the requested locale or code is unknown. An unknown
// code in every catalog returns the code itself so callers never see an empty
// message.
func (t *Translator) Translate(code, locale string) string {
	if catalog, ok := t.catalogs[normalize(locale)]; ok {
		if msg, ok := catalog[code]; ok {
			return msg
		}
	}
	if msg, ok := t.catalogs[t.fallback][code]; ok {
		return msg
	}
	return code
}

// Locales lists the loaded catalog names.
func (t *Translator) Locales() []string {
	locales := make([]string, 0, len(t.catalogs))
	for locale := range t.catalogs {
		locales = append(locales, locale)
	}
	return locales
}

func normalize(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	// "pt-BR" selects the "pt" catalog.
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		locale = locale[:idx]
	}
	return locale
}
