// internal/middleware/i18n.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/hodu/storefront/internal/i18n"
)

// I18nMiddleware picks the response language: an explicit ?lang= wins, then the
// first supported Accept-Language entry, then fallback.
func I18nMiddleware(fallback string) gin.HandlerFunc {
	if i18n.Normalize(fallback) == "" {
		fallback = i18n.DefaultLang
	}

	return func(c *gin.Context) {
		lang := i18n.Normalize(c.Query("lang"))

		if lang == "" {
			// Handle cases like "en-US,en;q=0.9,ko;q=0.8"
			tags, _, err := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
			if err == nil {
				for _, tag := range tags {
					if lang = i18n.Normalize(tag.String()); lang != "" {
						break
					}
				}
			}
		}

		if lang == "" {
			lang = fallback
		}

		c.Set("lang", lang)
		c.Next()
	}
}
