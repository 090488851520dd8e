// Package auth owns the credential and token state of a Koywe client.
//
// # Overview
//
// A Manager holds immutable Credentials and the mutable Session obtained from
// the API's /auth endpoint. It implements the password grant (Authenticate),
// the refresh grant with a full re-login fallback (Refresh), a pure validity
// check (IsValid) and lazy header acquisition (EnsureValidHeaders), which is
// the only place a token is obtained implicitly.
//
// # Expiry
//
// A token is considered expired ExpiryMargin (60s) before the instant the
// server reported, so a request never starts with a token that is about to
// lapse in flight. When the server omits expires_in, DefaultExpiresIn applies.
//
// # Concurrency
//
// A Manager is safe for concurrent use. Session reads and writes are guarded
// by a mutex, and concurrent token grants are collapsed into one request on
// the wire: callers that need a token while a grant is running wait for it
// and share its result (including the context of the caller that started it).
// Authenticate, Refresh and the implicit grant of EnsureValidHeaders share
// one flight: an explicit Authenticate issued while a Refresh is running
// joins it and returns its result instead of sending its own password grant,
// and a Refresh joining a running Authenticate likewise sends no refresh
// grant.
//
// # Errors
//
// Failures are *apierr.Error values: rejected credentials and malformed token
// responses are apierr.KindAuthentication, transport failures are
// apierr.KindNetwork. Refresh never returns its own error; a failed refresh is
// reported to the logger and to Config.OnRefreshFailure, then replaced by a
// password grant whose outcome is returned.
package auth
