package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handlers "github.com/modshield/modshield/pkg/handlers/http"
	"github.com/modshield/modshield/pkg/infra/telemetry"
	"github.com/modshield/modshield/pkg/moderation"
)

type fixedClassifier struct {
	verdict moderation.Verdict
	err     error
}

func (f *fixedClassifier) Classify(ctx context.Context, text string) (moderation.Verdict, error) {
	return f.verdict, f.err
}

type fixedArbiter struct {
	safe bool
}

func (f *fixedArbiter) Judge(ctx context.Context, content string) (bool, error) {
	return f.safe, nil
}

type noopBlocklist struct{}

func (noopBlocklist) Upsert(ctx context.Context, listName, text, category string) error {
	return nil
}

func newEvaluateApp(strict, loose moderation.Classifier, arb moderation.Arbiter) *fiber.App {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	pipeline := moderation.NewPipeline(strict, loose, arb, noopBlocklist{}, "banned-terms", logger)
	handler := handlers.NewEvaluateHandler(logger, pipeline, telemetry.NoopExporter{})

	app := fiber.New()
	app.Post("/api/v1/evaluate", handler.Handle)
	return app
}

func postEvaluate(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/api/v1/evaluate", bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestEvaluateHandler_MissingText(t *testing.T) {
	app := newEvaluateApp(&fixedClassifier{}, &fixedClassifier{}, &fixedArbiter{safe: true})

	resp := postEvaluate(t, app, `{}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestEvaluateHandler_InvalidJSON(t *testing.T) {
	app := newEvaluateApp(&fixedClassifier{}, &fixedClassifier{}, &fixedArbiter{safe: true})

	resp := postEvaluate(t, app, `{not json`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestEvaluateHandler_CleanTextPasses(t *testing.T) {
	app := newEvaluateApp(&fixedClassifier{}, &fixedClassifier{}, &fixedArbiter{safe: true})

	resp := postEvaluate(t, app, `{"text":"hello world"}`)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body struct {
		Content    string `json:"content"`
		Suppressed bool   `json:"suppressed"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "hello world", body.Content)
	assert.False(t, body.Suppressed)
}

func TestEvaluateHandler_HarmfulTextSuppressed(t *testing.T) {
	strict := &fixedClassifier{verdict: moderation.Hit("Violence")}
	loose := &fixedClassifier{verdict: moderation.Hit("Violence")}
	app := newEvaluateApp(strict, loose, &fixedArbiter{safe: false})

	resp := postEvaluate(t, app, `{"text":"violent text"}`)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body struct {
		Content    string `json:"content"`
		Suppressed bool   `json:"suppressed"`
		Category   string `json:"category"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Suppressed)
	assert.Empty(t, body.Content)
	assert.Equal(t, "Violence", body.Category)
}

func TestEvaluateHandler_ClassifierUnavailable_BadGateway(t *testing.T) {
	strict := &fixedClassifier{err: fmt.Errorf("%w: connection refused", moderation.ErrClassifierUnavailable)}
	app := newEvaluateApp(strict, &fixedClassifier{}, &fixedArbiter{safe: true})

	resp := postEvaluate(t, app, `{"text":"anything"}`)

	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestEvaluateHandler_UnexpectedError_InternalServerError(t *testing.T) {
	strict := &fixedClassifier{err: errors.New("something else")}
	app := newEvaluateApp(strict, &fixedClassifier{}, &fixedArbiter{safe: true})

	resp := postEvaluate(t, app, `{"text":"anything"}`)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
