// Package httpapi exposes the translation service over HTTP.
//
// Routes:
//
//	GET  /v1/translations/{locale}/{key}?fallback=&name=...
//	POST /v1/translations/{locale}:batch   {"keys": [...]}
//	PUT  /v1/translations/{locale}/{key}   {"value": "..."}
//	POST /v1/refresh?locale=en&locale=pl
//	PUT  /v1/mode                          {"mode": "hybrid"}
//	GET  /v1/cache
//	GET  /v1/locale                        negotiated from Accept-Language
//	GET  /health/live
//	GET  /health/ready
//
// Query parameters other than fallback on the single-key route are passed to
// the template as placeholders.
package httpapi
