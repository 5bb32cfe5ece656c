package utils // package utils provides helpers for session token creation and admin key checks

import (
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken represents a signed JWT session handle along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp.  The token is the opaque handle clients present on every call;
// entitlement state itself lives only in the in-memory session store, keyed
// by the sid claim.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a session.  It takes the
// signing secret, the session ID, the opaque user identifier, and a TTL in
// minutes.  The JWT carries the session ID (sid), the user identifier as
// subject (sub), expiration (exp) and issued at (iat).
func NewSessionToken(secret, sessionID, userID string, ttlMin int) (SessionToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sid": sessionID,
        "sub": userID,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}
