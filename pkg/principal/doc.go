// Package principal defines the authenticated identity consumed by the tenant
// pipeline and provides a bearer-token authenticator for it.
//
// The pipeline treats authentication as an opaque dependency: anything
// implementing Authenticator can supply principals. The bundled
// JWTAuthenticator covers the common case of HS256 bearer tokens.
//
//	auth, _ := principal.NewJWTAuthenticator([]byte(secret), "api.example.com")
//	mw := tenant.Middleware(auth, resolver, guard)
//
// Downstream handlers read the identity back with FromContext:
//
//	p, ok := principal.FromContext(r.Context())
package principal
