package middlewares

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"exusiai.dev/cardrank/internal/constant"
)

// sentryHubKey is the locals key fibersentry stores the request hub under.
const sentryHubKey = "sentry-hub"

// SentryHub returns the hub attached to the request, or nil when fibersentry
// is not mounted.
func SentryHub(c *fiber.Ctx) *sentry.Hub {
	if hub := sentry.GetHubFromContext(c.UserContext()); hub != nil {
		return hub
	}
	hub, _ := c.Locals(sentryHubKey).(*sentry.Hub)
	return hub
}

func EnrichSentry() func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		hub := SentryHub(c)
		if hub != nil {
			if id, ok := c.Locals(constant.ContextKeyRequestID).(string); ok {
				hub.Scope().SetTag("request_id", id)
			}
			c.SetUserContext(sentry.SetHubOnContext(c.UserContext(), hub))
		}

		var r http.Request
		if err := fasthttpadaptor.ConvertRequest(c.Context(), &r, true); err != nil {
			return err
		}
		span := sentry.StartSpan(c.UserContext(), "http.server", sentry.ContinueFromRequest(&r))
		defer span.Finish()

		return c.Next()
	}
}
