// Package health serves liveness and readiness probes.
//
// Liveness always succeeds. Readiness runs the registered checks (the Redis
// ping when the draft store uses Redis) concurrently under a shared timeout
// and answers 503 if any fails. Clients get JSON with ?format=json or an
// Accept: application/json header, plain text otherwise.
package health
