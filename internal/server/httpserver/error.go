package httpserver

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"exusiai.dev/cardrank/internal/pkg/flog"
	"exusiai.dev/cardrank/internal/pkg/middlewares"
	"exusiai.dev/cardrank/internal/pkg/pgerr"
	"exusiai.dev/cardrank/internal/service"
)

func handleCustomError(ctx *fiber.Ctx, e *pgerr.APIError) error {
	flog.WarnFrom(ctx).
		Err(e).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Msg(e.Message)

	body := fiber.Map{
		"code":    e.ErrorCode,
		"message": e.Message,
	}

	if e.Extras != nil && len(*e.Extras) > 0 {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var apiErr *pgerr.APIError
	if errors.As(err, &apiErr) {
		return handleCustomError(ctx, apiErr)
	}

	// copy so the shared sentinel is never mutated
	re := *pgerr.ErrInternalError

	var fe *fiber.Error
	switch {
	case errors.Is(err, service.ErrMatchSourceUnavailable):
		re = *pgerr.ErrUpstreamUnavailable
	case errors.As(err, &fe):
		re.StatusCode = fe.Code
		re.ErrorCode = "UNKNOWN_ERROR"
		re.Message = fe.Message
	}

	flog.ErrorFrom(ctx).
		Stack().
		Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", re.StatusCode).
		Msg("request failed")

	if hub := middlewares.SentryHub(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		hub.CaptureException(err)
	}

	return handleCustomError(ctx, &re)
}
