// Package relay sends rendered email HTML to a single recipient.
//
// It is the domain behind POST /send-email: it validates the request,
// guards against duplicate concurrent sends to the same address and hands
// the message to a mailer.Mailer. There is no queue and no retry; each call
// is one best-effort attempt.
package relay
