package fiberlog

import (
	authutils "hirex-backend/lib/utils/auth-utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	TagPid       = "pid"
	TagLatency   = "latency"
	TagStatus    = "status"
	TagMethod    = "method"
	TagPath      = "path"
	TagURL       = "url"
	TagIP        = "ip"
	TagUA        = "ua"
	TagBody      = "body"
	TagResBody   = "resBody"
	TagBytesSent = "bytesSent"
	TagUserID    = "user_id"
	RequestID    = "request_id"
)

// RequestIDLocal is the fiber Locals key holding the request id.
const RequestIDLocal = "requestid"

// bodies longer than this are cut in logs
const maxLoggedBody = 2048

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag extracts one log field from the request.
type FuncTag func(c *fiber.Ctx, d *data) interface{}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid:       func(_ *fiber.Ctx, d *data) interface{} { return d.pid },
		TagLatency:   func(_ *fiber.Ctx, d *data) interface{} { return d.end.Sub(d.start).String() },
		TagStatus:    func(c *fiber.Ctx, _ *data) interface{} { return c.Response().StatusCode() },
		TagMethod:    func(c *fiber.Ctx, _ *data) interface{} { return c.Method() },
		TagPath:      func(c *fiber.Ctx, _ *data) interface{} { return c.Path() },
		TagURL:       func(c *fiber.Ctx, _ *data) interface{} { return c.OriginalURL() },
		TagIP:        func(c *fiber.Ctx, _ *data) interface{} { return c.IP() },
		TagUA:        func(c *fiber.Ctx, _ *data) interface{} { return c.Get(fiber.HeaderUserAgent) },
		TagBody:      func(c *fiber.Ctx, _ *data) interface{} { return cut(c.Body()) },
		TagResBody:   func(c *fiber.Ctx, _ *data) interface{} { return cut(c.Response().Body()) },
		TagBytesSent: func(c *fiber.Ctx, _ *data) interface{} { return len(c.Response().Body()) },
		TagUserID:    func(c *fiber.Ctx, _ *data) interface{} { return userID(c) },
		RequestID:    func(c *fiber.Ctx, _ *data) interface{} { return GetRequestID(c) },
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

// GetRequestID returns the id assigned to the request, taking the
// X-Request-ID header when the caller sent one.
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(RequestIDLocal).(string); ok && id != "" {
		return id
	}
	id := c.Get(fiber.HeaderXRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals(RequestIDLocal, id)
	return id
}

func userID(c *fiber.Ctx) string {
	sub, _ := authutils.GetClaims(c).GetSubject()
	return sub
}

func cut(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
