package app

import (
	"go.uber.org/zap"

	"github.com/bellavista/ordering/internal/domain/menu"
)

// logEvents reports cart activity to the application logger. It stands in for
// the storefront's toast notifications on the server side.
type logEvents struct {
	lg *zap.Logger
}

func (e logEvents) ItemAdded(item menu.Item, quantity int) {
	e.lg.Info("Added to order",
		zap.String("item_id", item.ID),
		zap.String("name", item.Name),
		zap.Int("quantity", quantity),
	)
}

func (e logEvents) ItemRemoved(item menu.Item) {
	e.lg.Info("Removed from order",
		zap.String("item_id", item.ID),
		zap.String("name", item.Name),
	)
}
