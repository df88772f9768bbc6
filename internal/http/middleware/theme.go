package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	ThemeCookie = "theme"
	ThemeDark   = "dark"
	ThemeLight  = "light"

	themeKey = "theme"
)

// Theme exposes the reader's colour scheme, taken from the theme cookie, to
// page handlers.
func Theme() gin.HandlerFunc {
	return func(c *gin.Context) {
		theme := ThemeLight
		if v, err := c.Cookie(ThemeCookie); err == nil && v == ThemeDark {
			theme = ThemeDark
		}
		c.Set(themeKey, theme)
		c.Next()
	}
}

func CurrentTheme(c *gin.Context) string {
	if v, ok := c.Get(themeKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ThemeLight
}
