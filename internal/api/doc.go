// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between external clients and
// the internal task service, and owns the single place where raised
// failures are classified into the uniform error response shape.
package api
