package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/mitchellh/mapstructure"

	"github.com/modshield/modshield/pkg/infra/telemetry"
)

const ExporterName = "kafka"

type Config struct {
	Host  string `mapstructure:"host"`
	Port  string `mapstructure:"port"`
	Topic string `mapstructure:"topic"`
}

// Exporter publishes decision events to a kafka topic.
type Exporter struct {
	cfg      Config
	producer *kafka.Producer
}

func ValidateConfig(settings map[string]interface{}) error {
	var conf Config
	if err := mapstructure.Decode(settings, &conf); err != nil {
		return fmt.Errorf("invalid kafka config: %w", err)
	}
	if conf.Host == "" {
		return errors.New("kafka host is required")
	}
	if conf.Port == "" {
		return errors.New("kafka port is required")
	}
	if conf.Topic == "" {
		return errors.New("kafka topic is required")
	}
	return nil
}

func NewExporter(settings map[string]interface{}) (telemetry.Exporter, error) {
	if err := ValidateConfig(settings); err != nil {
		return nil, err
	}
	var conf Config
	if err := mapstructure.Decode(settings, &conf); err != nil {
		return nil, fmt.Errorf("invalid kafka config: %w", err)
	}

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": fmt.Sprintf("%s:%s", conf.Host, conf.Port),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &Exporter{
		cfg:      conf,
		producer: producer,
	}, nil
}

func (e *Exporter) Name() string {
	return ExporterName
}

func (e *Exporter) Handle(ctx context.Context, evt *telemetry.DecisionEvent) error {
	if e.producer == nil {
		return errors.New("kafka producer is not initialized")
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)
	err = e.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &e.cfg.Topic, Partition: kafka.PartitionAny},
		Value:          data,
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	ev := <-deliveryChan
	msg, ok := ev.(*kafka.Message)
	if !ok {
		return fmt.Errorf("unexpected delivery event type %T", ev)
	}
	if msg.TopicPartition.Error != nil {
		return fmt.Errorf("delivery failed: %w", msg.TopicPartition.Error)
	}
	return nil
}

func (e *Exporter) Close() {
	if e.producer != nil {
		e.producer.Flush(5000)
		e.producer.Close()
	}
}
