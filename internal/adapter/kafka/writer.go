// Package kafka publishes evaluated forcing series to the topic the
// simulation service consumes.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/ovitrap/aedes-study-service/internal/climate"
	"github.com/ovitrap/aedes-study-service/internal/config"
	"github.com/ovitrap/aedes-study-service/internal/observability"
)

// Writer produces forcing samples to the sink topic.
type Writer struct {
	writer  *kafkago.Writer
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, metrics: metrics, logger: logger}
}

// PublishSeries serializes and publishes a forcing series in a single
// WriteMessages call.
func (w *Writer) PublishSeries(ctx context.Context, samples []climate.ForcingSample) error {
	if len(samples) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(samples))
	for i := range samples {
		msg, err := serializeToMessage(samples[i])
		if err != nil {
			w.metrics.PublishErrors.Inc()
			return err
		}
		msgs[i] = msg
	}

	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		w.metrics.PublishErrors.Inc()
		return fmt.Errorf("publish forcing series: %w", err)
	}
	w.metrics.SamplesPublished.Add(float64(len(samples)))
	w.logger.Info("forcing series published", "samples", len(samples))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a forcing sample into a Kafka message keyed
// by day, so partitioning keeps each day's samples together on replays.
func serializeToMessage(s climate.ForcingSample) (kafkago.Message, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize forcing sample: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.FormatFloat(s.Day, 'f', -1, 64)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "day", Value: []byte(strconv.FormatFloat(s.Day, 'f', -1, 64))},
			{Key: "generated_at", Value: []byte(s.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
