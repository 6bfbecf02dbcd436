package sentry

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

var enabled bool

// Init configures the Sentry client. An empty DSN leaves reporting disabled.
func Init(dsn, environment string) error {
	if dsn == "" {
		log.Println("⚠️ Sentry disabled: no DSN configured.")
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		AttachStacktrace: true,
	}); err != nil {
		return err
	}
	enabled = true
	return nil
}

// Flush waits for buffered events before shutdown.
func Flush() {
	if enabled {
		sentry.Flush(2 * time.Second)
	}
}

// Middleware attaches a per-request hub. Panics are re-raised for gin.Recovery.
func Middleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{Repanic: true})
}

// CaptureError reports an already-logged error with a tag describing its origin.
func CaptureError(err error, code string) {
	if err == nil || !enabled {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("error.code", code)
		sentry.CaptureException(err)
	})
}

// CaptureErrorWithContext reports an error using the request hub when one is attached.
func CaptureErrorWithContext(c *gin.Context, err error, message string) {
	log.Printf("%s: %v", message, err)
	if err == nil || !enabled {
		return
	}
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		CaptureError(err, message)
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetExtra("message", message)
		if c.Request != nil {
			scope.SetTag("http.method", c.Request.Method)
			scope.SetTag("http.path", c.Request.URL.Path)
		}
		hub.CaptureException(err)
	})
}
