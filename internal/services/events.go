package services

import (
	"context"

	rabbit "storefront-service/internal/infra/rabbitmq"

	"go.uber.org/zap"
)

// publishEvent is best-effort: the write it describes has already committed.
func publishEvent(ctx context.Context, pub rabbit.PublisherInterface, log *zap.Logger, routingKey string, data any) {
	if err := pub.Publish(context.WithoutCancel(ctx), routingKey, data); err != nil {
		log.Warn("failed to publish event", zap.String("event", routingKey), zap.Error(err))
	}
}
