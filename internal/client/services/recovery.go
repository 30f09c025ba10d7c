package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/mybank/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/logging"
)

const (
	ForgotRequestsKey = "forgotRequests"
	ForgotRecordedMsg = "Reset request recorded. Please visit a branch to verify your identity."
)

// ForgotRequest is one entry of the local reset request log.
type ForgotRequest struct {
	Email string    `json:"email"`
	TS    time.Time `json:"ts"`
}

// RecoveryService records password reset requests locally. Nothing is sent
// to the backend: staff verify the customer in a branch.
type RecoveryService struct {
	store metadata.Repository
	log   logging.Logger
	now   func() time.Time
}

func NewRecoveryService(store metadata.Repository, log logging.Logger) *RecoveryService {
	return &RecoveryService{store: store, log: log, now: time.Now}
}

func (s *RecoveryService) Request(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !views.ValidEmail(email) {
		return &views.ValidationError{Field: "email", Message: "Enter a valid email."}
	}

	req := ForgotRequest{Email: email, TS: s.now().UTC()}
	if err := appendRecord(ctx, s.store, ForgotRequestsKey, req); err != nil {
		return err
	}
	s.log.Info(ctx, "password reset request recorded")
	return nil
}

// Requests returns the recorded requests, oldest first.
func (s *RecoveryService) Requests(ctx context.Context) ([]ForgotRequest, error) {
	return readRecords[ForgotRequest](ctx, s.store, ForgotRequestsKey)
}
