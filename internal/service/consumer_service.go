// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"rbac-chatbot-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService runs ingestion requests published by the admin endpoint.
// One goroutine drains the topic, so concurrent requests for the same
// partition are naturally serialized.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	ingestion IIngestionService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	ingestion IIngestionService,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		ingestion: ingestion,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestRequest
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingest message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if payload.Partition == "" {
		if _, err := cs.ingestion.IngestAll(ctx); err != nil {
			log.Printf("[ERROR] Ingest all failed: %v", err)
		}
		msg.Ack()
		return
	}

	_, err := cs.ingestion.IngestPartition(ctx, payload.Partition)
	if err != nil && !errors.Is(err, ErrSourceDirMissing) {
		log.Printf("[ERROR] Ingest %s failed: %v", payload.Partition, err)
	}
	// Ack either way: re-running a failed ingestion is an operator action,
	// the core never retries on its own.
	msg.Ack()
}
