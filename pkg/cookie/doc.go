// Package cookie reads and writes the editor's cookies.
//
// Plain cookies hold the theme choices. The draft id lives in a signed
// cookie so a visitor cannot point their session at someone else's draft
// by editing it:
//
//	m, err := cookie.New(cookie.Config{Secret: os.Getenv("COOKIE_SECRET")})
//	if err := m.SetSigned(w, "draft", draftID, 30*24*3600); err != nil {
//	    return err
//	}
//	id, err := m.GetSigned(r, "draft") // ErrBadSig if tampered
//
// Signed values are encoded as base64url(value) + "." + base64url(HMAC-SHA256).
// Without a secret, plain cookies still work and signed ones return
// [ErrNoSecret].
package cookie
