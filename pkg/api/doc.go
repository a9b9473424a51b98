// Package api exposes the notification service over HTTP.
//
// Request/response bodies are the notifier package's result variants
// serialized as-is; the handlers only translate error codes into HTTP
// statuses. The /notifications/stream endpoint is the live transport: a
// server-sent event stream whose lifetime is the user's connection, driving
// presence registration, the pending catch-up on open, and deregistration on
// close.
package api
