package cachectrl

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"exusiai.dev/cardrank/internal/pkg/cache"
)

// OptIn lets clients and proxies keep the response for maxAge from now.
func OptIn(ctx *fiber.Ctx, lastModified time.Time, maxAge time.Duration) {
	ctx.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))
	ctx.Set(fiber.HeaderExpires, time.Now().Add(maxAge).UTC().Format(time.RFC1123))

	ctx.Response().Header.SetLastModified(lastModified)
}

// OptInEntry advertises the remaining lifetime of a cache entry. An entry
// already due for recomputation is sent with max-age=0.
func OptInEntry[T any](ctx *fiber.Ctx, e *cache.Entry[T]) {
	OptIn(ctx, e.ComputedAt, e.MaxAge(time.Now()))
}

func OptOut(ctx *fiber.Ctx) {
	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	ctx.Set(fiber.HeaderPragma, "no-cache")
	ctx.Set(fiber.HeaderExpires, "0")
}
