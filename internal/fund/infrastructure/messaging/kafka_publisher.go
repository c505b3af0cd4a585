package messaging

import (
	"context"

	"github.com/wyfcoding/fundbarometer/internal/fund/domain"
	"github.com/wyfcoding/fundbarometer/pkg/mq"
)

type kafkaPublisher struct {
	producer *mq.KafkaProducer
}

// NewKafkaPublisher 将 Kafka 生产者包装为领域事件发布器
func NewKafkaPublisher(producer *mq.KafkaProducer) domain.EventPublisher {
	return &kafkaPublisher{producer: producer}
}

func (p *kafkaPublisher) Publish(ctx context.Context, topic, key string, event any) error {
	return p.producer.SendMessage(ctx, topic, key, event)
}
