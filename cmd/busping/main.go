// The busping binary verifies broker connectivity end to end: it connects,
// declares the topology, publishes a probe message to a transient queue and
// reads it back. Useful when wiring up a new environment.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"ordermgmt/cmd"
	"ordermgmt/internal/adapters/rabbitmq"
)

const (
	probeQueue      = "busping"
	probeRoutingKey = "busping"
	receiveTimeout  = 10 * time.Second
)

type probeMessage struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func main() {
	config := cmd.LoadConfig()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	fmt.Println("Testing broker connectivity...")
	fmt.Printf("URL: %s\n\n", config.AmqpURL)

	if err := run(config, logger); err != nil {
		fmt.Printf("FAILED: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nAll checks passed. Broker is configured correctly.")
}

func run(config cmd.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := rabbitmq.Connect(ctx, config.AmqpURL, logger)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Close()

	ch, err := client.NewConsumerChannel(1)
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Transient probe queue, removed when this connection goes away.
	if _, err = ch.QueueDeclare(probeQueue, false, true, true, false, nil); err != nil {
		return fmt.Errorf("declare probe queue: %w", err)
	}
	if err = ch.QueueBind(probeQueue, probeRoutingKey, rabbitmq.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind probe queue: %w", err)
	}

	probe := probeMessage{
		ID:        uuid.New(),
		Message:   "connectivity probe",
		Timestamp: time.Now().UTC(),
	}
	body, err := json.Marshal(probe)
	if err != nil {
		return err
	}

	fmt.Println("Test 1: publishing probe message...")
	if err = client.PublishPersistent(ctx, probeRoutingKey, body); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	fmt.Printf("  sent: %s\n", probe.ID)

	fmt.Println("Test 2: receiving probe message...")
	deliveries, err := ch.Consume(probeQueue, "", false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	select {
	case delivery := <-deliveries:
		var received probeMessage
		if err = json.Unmarshal(delivery.Body, &received); err != nil {
			return fmt.Errorf("decode probe: %w", err)
		}
		if received.ID != probe.ID {
			return fmt.Errorf("probe mismatch: sent %s, received %s", probe.ID, received.ID)
		}
		if err = delivery.Ack(false); err != nil {
			return fmt.Errorf("ack: %w", err)
		}
		fmt.Printf("  received and acked: %s\n", received.ID)
	case <-time.After(receiveTimeout):
		return fmt.Errorf("no message received within %s", receiveTimeout)
	}

	return nil
}
