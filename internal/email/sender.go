package email

import (
	"context"
	"errors"
)

// Sender define la interfaz para avisos por correo de nuevos matches.
type Sender interface {
	SendMatchAlert(ctx context.Context, toEmail, matchName string) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendMatchAlert(_ context.Context, _, _ string) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
