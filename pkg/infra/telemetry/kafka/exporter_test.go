package kafka_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modshield/modshield/pkg/infra/telemetry/kafka"
)

func TestValidateConfig(t *testing.T) {
	valid := map[string]interface{}{
		"host":  "localhost",
		"port":  "9092",
		"topic": "moderation-decisions",
	}
	assert.NoError(t, kafka.ValidateConfig(valid))
}

func TestValidateConfig_MissingFields(t *testing.T) {
	cases := []struct {
		name     string
		settings map[string]interface{}
	}{
		{"missing host", map[string]interface{}{"port": "9092", "topic": "t"}},
		{"missing port", map[string]interface{}{"host": "localhost", "topic": "t"}},
		{"missing topic", map[string]interface{}{"host": "localhost", "port": "9092"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, kafka.ValidateConfig(tc.settings))
		})
	}
}
