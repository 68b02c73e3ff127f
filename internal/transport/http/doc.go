// Package http implements the HTTP handlers for the report service. Handlers
// stay thin: they parse requests, delegate to the service layer, and turn
// service errors into RFC 7807 problem responses. Business logic lives in
// internal/services and internal/pipeline.
package http
