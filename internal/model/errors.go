package model

import "errors"

var (
	// ErrNotFound is returned by stores when no matching record exists.
	ErrNotFound = errors.New("record not found")

	// ErrAppIdentity means the caller did not present the shared application
	// identifier during handshake.
	ErrAppIdentity = errors.New("request does not come from the MoveOn application")

	// ErrInvalidAppSession covers every app-session token failure: missing,
	// malformed, bad signature, expired or wrong audience. Collapsed to one
	// message so the caller cannot tell which check failed.
	ErrInvalidAppSession = errors.New("invalid or expired session")

	// ErrInvalidCredentials covers both unknown identifier and wrong
	// password. A single message avoids account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidAccessToken covers every access-token failure: missing,
	// malformed, expired or missing subject claim.
	ErrInvalidAccessToken = errors.New("invalid or expired access token")

	// ErrRecoveryCodeInvalid means no account matches the email/code pair or
	// no recovery request is active for it.
	ErrRecoveryCodeInvalid = errors.New("invalid code or email")

	// ErrRecoveryCodeExpired means the code matched but its validity window
	// has passed.
	ErrRecoveryCodeExpired = errors.New("code expired")

	ErrUsernameTaken = errors.New("username is already in use")
	ErrEmailTaken    = errors.New("email is already in use")

	ErrEmptyPassword = errors.New("password must not be empty")
)
