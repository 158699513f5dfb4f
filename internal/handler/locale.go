package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/quillpost/internal/locale"
)

const localeContextKey = "__request_locale"

// LocaleMiddleware resolves request language and sets headers for downstream caching.
func (a *API) LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		pref := a.requestLocale(c)
		c.Header("Content-Language", pref.HTMLLang)
		c.Header("Vary", "Accept-Language")
		c.Next()
	}
}

func (a *API) requestLocale(c *gin.Context) locale.Preference {
	if cached, exists := c.Get(localeContextKey); exists {
		if pref, ok := cached.(locale.Preference); ok {
			return pref
		}
	}
	language := locale.NormalizeLanguage(c.Query("lang"))
	if language == "" {
		language = locale.LanguageFromAcceptLanguage(c.GetHeader("Accept-Language"))
	}
	pref := locale.PreferenceForLanguage(language)
	c.Set(localeContextKey, pref)
	return pref
}

func (a *API) text(c *gin.Context, english, chinese string) string {
	return locale.Pick(a.requestLocale(c).Language, english, chinese)
}
