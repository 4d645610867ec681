package middlewares

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"exusiai.dev/cardrank/internal/util/i18n"
)

func InjectI18n() func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		set := func(trans ut.Translator) error {
			c.Locals("T", trans)
			return c.Next()
		}

		tags, _, err := language.ParseAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
		if err != nil {
			return set(i18n.UT.GetFallback())
		}

		var langs []string
		for _, tag := range tags {
			base, _ := tag.Base()
			langs = append(langs, strings.ToLower(base.String()))
		}

		trans, _ := i18n.UT.FindTranslator(langs...)

		return set(trans)
	}
}
