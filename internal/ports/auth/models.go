package auth

// Claims representa la identidad ya resuelta del caller.
// El core nunca autentica por sí mismo: recibe esto del middleware.
type Claims struct {
	UserID string
	Email  string
}
