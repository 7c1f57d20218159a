package service

// SecretGenerator produces random one-time secrets.
type SecretGenerator interface {
	// VerificationCode returns six uniformly random digits, zero padded.
	VerificationCode() (string, error)

	// RandomPassword returns an unusable password for social-only accounts.
	RandomPassword() (string, error)
}
