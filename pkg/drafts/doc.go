// Package drafts persists each visitor's editor state between visits.
//
// A draft holds the header, footer, body and data texts, the last
// recipient address and the theme choices. Each field is stored under its
// own key ("draft:{id}:{field}") in a [cache.Cache], so the in-memory store
// works for a single process and Redis for several. Draft ids are ULIDs
// kept in a signed cookie.
//
// Writes happen only on explicit actions (Save, SaveRecipient, SaveTheme,
// Clear). Load fills any missing field from the defaults, which is the
// welcome email a first-time visitor sees.
package drafts
