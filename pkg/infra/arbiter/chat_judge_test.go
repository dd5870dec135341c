package arbiter_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/modshield/modshield/pkg/infra/arbiter"
	"github.com/modshield/modshield/pkg/infra/httpx/mocks"
)

func newTestJudge(t *testing.T) (*arbiter.ChatJudge, *mocks.MockHTTPClient) {
	t.Helper()
	mockClient := new(mocks.MockHTTPClient)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	judge := arbiter.NewChatJudge(arbiter.Config{
		BaseURL: "https://llm.example.com/v1",
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	}, mockClient, logger)
	return judge, mockClient
}

func completionResponse(content string) *http.Response {
	body := fmt.Sprintf(`{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, content)
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func TestChatJudge_HarmfulLabel(t *testing.T) {
	judge, mockClient := newTestJudge(t)
	mockClient.On("Do", mock.Anything).Return(completionResponse("Harmfull"), nil).Once()

	safe, err := judge.Judge(context.Background(), "nasty text")

	require.NoError(t, err)
	assert.False(t, safe)
	mockClient.AssertExpectations(t)
}

func TestChatJudge_NotHarmfulLabel(t *testing.T) {
	judge, mockClient := newTestJudge(t)
	mockClient.On("Do", mock.Anything).Return(completionResponse("Not Harmfull"), nil).Once()

	safe, err := judge.Judge(context.Background(), "benign text")

	require.NoError(t, err)
	assert.True(t, safe)
}

// A correctly spelled reply does not match the contract label; the judge only
// flags on the exact string it asked the model for.
func TestChatJudge_CorrectSpellingIsNotAMatch(t *testing.T) {
	judge, mockClient := newTestJudge(t)
	mockClient.On("Do", mock.Anything).Return(completionResponse("Harmful"), nil).Once()

	safe, err := judge.Judge(context.Background(), "text")

	require.NoError(t, err)
	assert.True(t, safe)
}

func TestChatJudge_WhitespaceAroundLabel(t *testing.T) {
	judge, mockClient := newTestJudge(t)
	mockClient.On("Do", mock.Anything).Return(completionResponse(" Harmfull\n"), nil).Once()

	safe, err := judge.Judge(context.Background(), "text")

	require.NoError(t, err)
	assert.False(t, safe)
}

func TestChatJudge_EmptyChoices_TreatedAsSafe(t *testing.T) {
	judge, mockClient := newTestJudge(t)
	body := `{"id":"cmpl-2","object":"chat.completion","choices":[]}`
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}, nil).Once()

	safe, err := judge.Judge(context.Background(), "text")

	require.NoError(t, err)
	assert.True(t, safe)
}

func TestChatJudge_TransportError_Returned(t *testing.T) {
	judge, mockClient := newTestJudge(t)
	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	_, err := judge.Judge(context.Background(), "text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "arbiter request failed")
}
