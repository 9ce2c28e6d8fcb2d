package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"pageserver/internal/http/middleware"
)

// errorPayload defines the standardized error response body of the admin API.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "NOT_FOUND", "SERVICE_UNAVAILABLE")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

func statusOf(err error) int {
	var e *fiber.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return fiber.StatusInternalServerError
}

// PageMethods is every method the page answers: Fiber's defaults plus the
// extension methods common HTTP parsers accept (WebDAV, CalDAV, UPnP, caches).
var PageMethods = append(fiber.DefaultMethods[:len(fiber.DefaultMethods):len(fiber.DefaultMethods)],
	"ACL", "BIND", "CHECKOUT", "COPY", "LINK", "LOCK", "M-SEARCH", "MERGE",
	"MKACTIVITY", "MKCALENDAR", "MKCOL", "MOVE", "NOTIFY", "PROPFIND", "PROPPATCH",
	"PURGE", "QUERY", "REBIND", "REPORT", "SEARCH", "SOURCE", "SUBSCRIBE",
	"UNBIND", "UNLINK", "UNLOCK", "UNSUBSCRIBE",
)

// PageReadBufferSize bounds request headers; requests up to 16 KiB of headers are served.
const PageReadBufferSize = 16 << 10

// PageAppConfig is the Fiber configuration of the page app.
func PageAppConfig(log logrus.FieldLogger) fiber.Config {
	return fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          PageErrorHandler(log),
		RequestMethods:        PageMethods,
		ReadBufferSize:        PageReadBufferSize,
	}
}

// PageErrorHandler returns the global error handler of the page app. The
// client gets the status only: the page has no error document of its own.
func PageErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := statusOf(err)
		log.WithFields(logrus.Fields{
			"request_id": requestIDFromCtx(c),
			"status":     status,
		}).WithError(err).Error("page_unavailable")

		c.Response().ResetBody()
		c.Status(status)
		return nil
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes admin error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := statusOf(err)

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
