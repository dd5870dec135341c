package contentsafety_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/modshield/modshield/pkg/infra/contentsafety"
)

func TestClient_CreateOrUpdateBlocklist(t *testing.T) {
	client, mockClient := newTestClient(t)

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodPatch &&
			strings.Contains(req.URL.String(), "/contentsafety/text/blocklists/banned-terms?api-version=")
	})).Return(jsonResponse(http.StatusOK, contentsafety.Blocklist{
		BlocklistName: "banned-terms",
		Description:   "flagged by the pipeline",
	}), nil).Once()

	resp, err := client.CreateOrUpdateBlocklist(context.Background(), "banned-terms", "flagged by the pipeline")

	require.NoError(t, err)
	assert.Equal(t, "banned-terms", resp.BlocklistName)
	mockClient.AssertExpectations(t)
}

func TestClient_AddOrUpdateItems(t *testing.T) {
	client, mockClient := newTestClient(t)

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodPost &&
			strings.Contains(req.URL.String(), "/contentsafety/text/blocklists/banned-terms:addOrUpdateBlocklistItems?api-version=")
	})).Return(jsonResponse(http.StatusOK, map[string]interface{}{
		"blocklistItems": []map[string]interface{}{
			{"blocklistItemId": "abc-123", "text": "harmful text", "description": "Violence"},
		},
	}), nil).Once()

	resp, err := client.AddOrUpdateItems(context.Background(), "banned-terms", []contentsafety.BlocklistItem{
		{Text: "harmful text", Description: "Violence"},
	})

	require.NoError(t, err)
	require.Len(t, resp.BlocklistItems, 1)
	assert.Equal(t, "abc-123", resp.BlocklistItems[0].BlocklistItemID)
	assert.Equal(t, "Violence", resp.BlocklistItems[0].Description)
}

func TestClient_AddOrUpdateItems_ServiceError(t *testing.T) {
	client, mockClient := newTestClient(t)

	mockClient.On("Do", mock.Anything).Return(jsonResponse(http.StatusNotFound, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    "NotFound",
			"message": "blocklist does not exist",
		},
	}), nil).Once()

	_, err := client.AddOrUpdateItems(context.Background(), "missing-list", []contentsafety.BlocklistItem{
		{Text: "x"},
	})

	require.Error(t, err)
	var svcErr *contentsafety.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "NotFound", svcErr.Code)
}
