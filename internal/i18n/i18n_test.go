package i18n

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateDefaultsToKorean(t *testing.T) {
	assert.Equal(t, "상품이 없습니다.", T("ko", KeyCatalogEmpty))
	assert.Equal(t, "상품이 없습니다.", T("fr", KeyCatalogEmpty))
	assert.Equal(t, "No products found.", T("en", KeyCatalogEmpty))
}

func TestTranslateFormatsArguments(t *testing.T) {
	assert.Equal(t, "배너 3", T("ko", KeyBannerAlt, 3))
	assert.Equal(t, "배송비 3,000원", T("ko", KeyProductShippingFee, "3,000"))
}

func TestUnknownKeyFallsBackToKey(t *testing.T) {
	assert.Equal(t, "nope.missing", T("ko", "nope.missing"))
}

func TestLocalesShareKeys(t *testing.T) {
	read := func(name string) map[string]string {
		data, err := localeFS.ReadFile("locales/" + name)
		require.NoError(t, err)
		var m map[string]string
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	ko, en := read("ko.json"), read("en.json")
	for key := range ko {
		assert.Contains(t, en, key)
	}
	assert.Len(t, en, len(ko))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "en", Normalize("en-US"))
	assert.Equal(t, "ko", Normalize("ko_KR"))
	assert.Equal(t, "", Normalize("de"))
	assert.Equal(t, []string{"en", "ko"}, GetSupportedLanguages())
}
