// Package auth protects the write endpoints of the books API.
//
// Two modes are supported:
//   - "none": No authentication required (default)
//   - "token": POST, PUT, PATCH and DELETE require a Bearer token; reads stay public
//
// # Configuration
//
//	AUTH_MODE=token
//	AUTH_TOKEN_HASH=<bcrypt hash>   # produced by `bookshelf hash-token`
//
// # Usage
//
//	authMiddleware := auth.NewMiddleware(cfg.Auth)
//	router.Use(authMiddleware.Handler())
package auth
