// Package session owns the console's authentication state.
//
// A Controller logs a user in against a transport.Transport, persists the
// token pair in a credentials.Store, loads the user's profile and decides
// whether the cached tabs belong to someone else. Every failure while
// logging in ends in a full reset before the error is returned, so the rest
// of the console never sees a half authenticated session.
//
// Token refresh is not handled here; an expired token is discovered by the
// next profile fetch and leads to a reset.
package session
