package adapters

import (
	"context"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/logger"

	"go.uber.org/zap"
)

// ZapNotifier implements the Notifier port by emitting through the structured
// logger. The real notification sink is an external collaborator; this is the
// consumption edge the orchestrator talks to.
type ZapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier creates a ZapNotifier over the global logger.
func NewZapNotifier() *ZapNotifier {
	return &ZapNotifier{
		logger: logger.Get(),
	}
}

// Success delivers a success message.
func (n *ZapNotifier) Success(ctx context.Context, message string) {
	n.logger.Info("Notification", zap.String("kind", "success"), zap.String("message", message))
}

// Error delivers an error message.
func (n *ZapNotifier) Error(ctx context.Context, message string) {
	n.logger.Warn("Notification", zap.String("kind", "error"), zap.String("message", message))
}
