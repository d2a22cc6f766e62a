package whatsapp

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	client "github.com/mamadbah2/floraledger/pkg/clients/whatsapp"
)

// ErrDisabled is returned when no WhatsApp client is configured.
var ErrDisabled = errors.New("whatsapp notifications are disabled")

// Notifier pushes text summaries to the shop owner.
type Notifier interface {
	NotifyOwner(ctx context.Context, message string) error
}

// OwnerNotifier is the production Notifier backed by the WhatsApp Cloud API.
type OwnerNotifier struct {
	client      client.Client
	ownerNumber string
	timeout     time.Duration
	logger      *zap.Logger
}

// NewOwnerNotifier wires a notifier. A nil client yields a notifier that
// reports ErrDisabled.
func NewOwnerNotifier(c client.Client, ownerNumber string, logger *zap.Logger) *OwnerNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OwnerNotifier{
		client:      c,
		ownerNumber: ownerNumber,
		timeout:     10 * time.Second,
		logger:      logger,
	}
}

// NotifyOwner sends message to the configured owner number.
func (n *OwnerNotifier) NotifyOwner(ctx context.Context, message string) error {
	if n.client == nil {
		return ErrDisabled
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	id, err := n.client.SendText(ctxWithTimeout, n.ownerNumber, message)
	if err != nil {
		return err
	}

	n.logger.Info("owner notified", zap.String("message_id", id))
	return nil
}
