// Package middleware groups the Fiber middleware of the server, one package each.
//
//   - rayid: tags every request with an X-Ray-ID (uuid) for log correlation.
//   - ratelimit: per-client-IP token buckets from golang.org/x/time/rate; a
//     request over its budget gets 429 with Retry-After.
//   - auth: X-API-Key check. An empty key disables it.
//
// Registration order in the serve command is rayid, request logging,
// ratelimit, swagger, auth, so that rejected requests are still traced.
package middleware
