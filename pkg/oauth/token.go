package oauth

// ServerError is the error code of every failed exchange: unreachable
// endpoint, provider error payload, non-2xx status or unusable body.
const ServerError = "server_error"

// Token is the outcome of a code-for-token exchange.
// Error is authoritative: a token with Error set is a failure even if
// AccessToken is also present.
type Token struct {
	AccessToken      string
	TokenType        string
	Error            string
	ErrorDescription string
}

// HasError reports whether the exchange failed.
func (t Token) HasError() bool {
	return t.Error != ""
}

func serverErrorToken(description string) Token {
	return Token{Error: ServerError, ErrorDescription: description}
}
