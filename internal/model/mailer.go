package model

import "context"

// Mailer delivers outbound notifications. Delivery failures are reported to
// the caller but never change the API response of the recovery flow.
type Mailer interface {
	SendRecoveryCode(ctx context.Context, to, code string) error
}
