// Package auth authenticates API callers. Two credential forms are
// accepted: a static API key checked against bcrypt hashes, and a
// signed JWT bearer token. Both the HTTP middleware and the WebSocket
// gateway authenticate through the same service so a credential that
// opens one surface opens the other.
package auth
