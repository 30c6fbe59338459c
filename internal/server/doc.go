// Package server exposes the sync pipeline over HTTP.
//
// Routes:
//
//	GET  /api/health      liveness probe
//	POST /api/sync        reconcile an inline transcript with inline lyrics
//	POST /api/align       align two texts and return the fused text
//	GET  /api/runs        list recorded sync runs (?status=&limit=)
//	GET  /api/runs/{id}   fetch one recorded run
//
// When an API token is configured every route except health requires
// "Authorization: Bearer <token>". Each request is tagged with a correlation
// ID, echoed in the X-Request-ID response header.
package server
