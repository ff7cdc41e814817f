package model

// TokenManager issues and verifies the two token classes used by the API.
//
// App-session tokens prove the caller is the legitimate mobile client and
// carry no user identity. Access tokens carry the authenticated username as
// subject. The two classes are signed with distinct secrets so neither
// verifier ever accepts the other class.
type TokenManager interface {
	IssueAppSessionToken() (string, error)
	IssueAccessToken(username string) (string, error)
	VerifyAppSessionToken(token string) error
	VerifyAccessToken(token string) (username string, err error)
}
