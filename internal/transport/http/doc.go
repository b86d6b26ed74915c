// Package http exposes the dashboard engine over a JSON API. Handlers are
// thin: they parse and validate query parameters, call the service, and map
// service sentinel errors onto structured API errors. All aggregation
// semantics live below the service boundary.
package http
