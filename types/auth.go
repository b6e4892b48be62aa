package types

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin is the role claim carried by tokens issued to the shared
// administrator credential.
const RoleAdmin = "admin"

// AdminClaims is the JWT claim set for administrator tokens. Tokens are
// stateless: expiry is the only revocation mechanism.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for the admin login endpoint.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
