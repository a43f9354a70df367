package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslatorLoadsEmbeddedCatalogs(t *testing.T) {
	tr, err := NewTranslator("en")
	require.NoError(t, err)
	assert.Contains(t, tr.Locales(), "en")
	assert.Contains(t, tr.Locales(), "pt")
}

func TestTranslatorUnknownFallbackFails(t *testing.T) {
	_, err := NewTranslator("xx")
	assert.Error(t, err)
}

func TestTranslate(t *testing.T) {
	tr, err := NewTranslator("en")
	require.NoError(t, err)

	assert.Equal(t, "Login successful", tr.Translate("auth.LOGIN_SUCCESS", "en"))
	assert.Equal(t, "Login realizado com sucesso", tr.Translate("auth.LOGIN_SUCCESS", "pt"))
}

func TestTranslateFallsBackOnUnknownLocale(t *testing.T) {
	tr, err := NewTranslator("en")
	require.NoError(t, err)

	assert.Equal(t, "Invalid credentials", tr.Translate("auth.INVALID_CREDENTIALS", "fr"))
	assert.Equal(t, "Invalid credentials", tr.Translate("auth.INVALID_CREDENTIALS", ""))
}

func TestTranslateNormalizesRegionalLocales(t *testing.T) {
	tr, err := NewTranslator("en")
	require.NoError(t, err)

	assert.Equal(t, "Token inválido ou expirado", tr.Translate("auth.TOKEN_INVALID", "pt-BR"))
	assert.Equal(t, "Token inválido ou expirado", tr.Translate("auth.TOKEN_INVALID", "PT_br"))
}

func TestTranslateUnknownCodeReturnsCode(t *testing.T) {
	tr, err := NewTranslator("en")
	require.NoError(t, err)

	assert.Equal(t, "nope.MISSING", tr.Translate("nope.MISSING", "en"))
}
