// Package locale translates panel messages. Each request gets its own
// localizer, chosen from the lang cookie or the Accept-Language header.
package locale

import (
	"io/fs"
	"strings"

	"github.com/mhsanaei/memo/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const localizerKey = "localizer"

var i18nBundle *i18n.Bundle

func newBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.MustParse("en-US"))
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

// InitLocalizer loads every translation file under translation/ in i18nFS.
func InitLocalizer(i18nFS fs.FS) error {
	bundle := newBundle()
	if err := parseTranslationFiles(i18nFS, bundle); err != nil {
		return err
	}
	i18nBundle = bundle
	return nil
}

// Languages lists the loaded language tags.
func Languages() []language.Tag {
	if i18nBundle == nil {
		return nil
	}
	return i18nBundle.LanguageTags()
}

// NewLocalizer returns a localizer for the first supported entry of langs,
// falling back to English.
func NewLocalizer(langs ...string) *i18n.Localizer {
	if i18nBundle == nil {
		i18nBundle = newBundle()
	}
	return i18n.NewLocalizer(i18nBundle, langs...)
}

func createTemplateData(params []string, seperator ...string) map[string]any {
	sep := "=="
	if len(seperator) > 0 {
		sep = seperator[0]
	}

	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, sep, 2)
		if len(parts) != 2 {
			continue
		}
		templateData[parts[0]] = parts[1]
	}
	return templateData
}

// I18n localizes key. Params are "name==value" pairs for the message
// template. A nil localizer or an unknown key yields the key itself.
func I18n(localizer *i18n.Localizer, key string, params ...string) string {
	if localizer == nil {
		return key
	}

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Warningf("failed to localize message %q: %v", key, err)
		return key
	}
	return msg
}

func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string
		if cookie, err := c.Request.Cookie("lang"); err == nil {
			lang = cookie.Value
		}
		c.Set(localizerKey, NewLocalizer(lang, c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// GetLocalizer returns the request's localizer, or nil outside
// LocalizerMiddleware.
func GetLocalizer(c *gin.Context) *i18n.Localizer {
	if v, ok := c.Get(localizerKey); ok {
		if l, ok := v.(*i18n.Localizer); ok {
			return l
		}
	}
	return nil
}

func parseTranslationFiles(i18nFS fs.FS, bundle *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := fs.ReadFile(i18nFS, path)
		if err != nil {
			return err
		}
		_, err = bundle.ParseMessageFileBytes(data, path)
		return err
	})
}
