package rekuest

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	jaTranslations "github.com/go-playground/validator/v10/translations/ja"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"exusiai.dev/cardrank/internal/pkg/pgerr"
	"exusiai.dev/cardrank/internal/util"
	"exusiai.dev/cardrank/internal/util/i18n"
)

var Validate = util.NewValidator()

func init() {
	var err error
	entr, _ := i18n.UT.GetTranslator("en")
	err = enTranslations.RegisterDefaultTranslations(Validate, entr)
	if err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation")
	}

	jatr, _ := i18n.UT.GetTranslator("ja")
	err = jaTranslations.RegisterDefaultTranslations(Validate, jatr)
	if err != nil {
		log.Warn().Err(err).Str("locale", "ja").Msg("could not register translation")
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

// TranslatorFromCtx returns the translator picked for the request, falling
// back to English when the i18n middleware did not run.
func TranslatorFromCtx(ctx *fiber.Ctx) ut.Translator {
	if t, ok := ctx.Locals("T").(ut.Translator); ok {
		return t
	}
	return i18n.UT.GetFallback()
}

// Translate translates errors into ErrorResponses
func translate(utt ut.Translator, ve validator.ValidationErrors) []*ErrorResponse {
	trans := []*ErrorResponse{}

	var fe validator.FieldError

	for i := 0; i < len(ve); i++ {
		fe = ve[i]

		message := fe.Translate(utt)
		message = util.AddSpace(message)

		trans = append(trans, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   message,
		})
	}

	return trans
}

func validateStruct(ctx *fiber.Ctx, s any) []*ErrorResponse {
	tr := TranslatorFromCtx(ctx)
	err := Validate.Struct(s)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			panic(err)
		}
		return translate(tr, errs)
	}
	return nil
}

// ValidBody will get the body from *fiber.Ctx using fiber#BodyParser(),
// and validate it using the validator singleton. If the validation passed it will write the unmarshalled body
// to dest and return a nil, otherwise it will return an error. Notice that dest shall
// always be a pointer.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	if err := validateStruct(ctx, dest); err != nil {
		return pgerr.NewInvalidViolations(err)
	}

	return nil
}

// ValidQuery is ValidBody for query strings.
func ValidQuery(ctx *fiber.Ctx, dest any) error {
	if err := ctx.QueryParser(dest); err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	if err := validateStruct(ctx, dest); err != nil {
		return pgerr.NewInvalidViolations(err)
	}

	return nil
}
