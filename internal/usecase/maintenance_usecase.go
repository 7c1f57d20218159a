package usecase

import "context"

// PurgeResult counts the records one maintenance pass removed.
type PurgeResult struct {
	VerificationCodes int64
	Users             int64
	Settings          int64
}

// MaintenanceUsecase evicts expired verification codes and unverified identities.
type MaintenanceUsecase interface {
	Purge(ctx context.Context) (*PurgeResult, error)
}
