package pnw

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"pnw_targets/internal/app"
	"pnw_targets/internal/config"
)

const nationPayload = `{"data":{"nations":{"data":[{
	"id":"42","nation_name":"Testland","score":"1000.5","ships":3,"missiles":1,"nukes":0,"spies":10,
	"color":"green","vacation_mode_turns":0,"beige_turns":0,"alliance_id":"7","gross_national_income":365000,
	"cities":[{"infrastructure":"1500.25","supermarket":2,"bank":1,"shopping_mall":0,"stadium":1,"subway":null}],
	"wars":[{"id":"9","turns_left":4,"date":"2024-05-01T12:00:00+00:00","def_id":"42",
		"attacks":[{"def_id":"42","money_stolen":"1200.50","date":"2024-05-01T13:00:00+00:00"}]}],
	"defensive_wars_count":1,
	"alliance":{"id":"7","name":"Rose","treaties":[{"alliance1_id":"7","alliance2_id":"8","treaty_type":"MDP","treaty_url":"https://example.test/t"}]}
}]}}}`

// newTestClient returns a client pointed at handler with all delays disabled
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClientWithConfig("test_api_key", server.URL, config.RequestConfig{
		Timeout:  5 * time.Second,
		PageSize: 500,
	})
}

func TestNewClient(t *testing.T) {
	client := NewClient("test_api_key")

	if client.apiKey != "test_api_key" {
		t.Errorf("Expected API key 'test_api_key', got '%s'", client.apiKey)
	}

	if client.client.Timeout != 30*time.Second {
		t.Errorf("Expected timeout 30s, got %v", client.client.Timeout)
	}

	if client.requestDelay != 100*time.Millisecond {
		t.Errorf("Expected request delay 100ms, got %v", client.requestDelay)
	}

	if client.rateLimitWait != 5*time.Second {
		t.Errorf("Expected rate limit wait 5s, got %v", client.rateLimitWait)
	}

	if client.pageSize != 500 {
		t.Errorf("Expected page size 500, got %d", client.pageSize)
	}

	if client.baseURL != DefaultBaseURL {
		t.Errorf("Expected base URL %s, got %s", DefaultBaseURL, client.baseURL)
	}
}

func TestAPICallCounter(t *testing.T) {
	client := NewClient("test_api_key")

	if count := client.GetAPICallCount(); count != 0 {
		t.Errorf("Expected initial count 0, got %d", count)
	}

	client.IncrementAPICall()
	client.IncrementAPICall()
	if count := client.GetAPICallCount(); count != 2 {
		t.Errorf("Expected count 2 after increments, got %d", count)
	}

	client.ResetAPICallCount()
	if count := client.GetAPICallCount(); count != 0 {
		t.Errorf("Expected count 0 after reset, got %d", count)
	}
}

func TestFetchNationByID(t *testing.T) {
	var gotKey, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		gotQuery = body["query"]
		w.Write([]byte(nationPayload))
	})

	nation, err := client.FetchNationByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotKey != "test_api_key" {
		t.Errorf("Expected api_key query parameter, got '%s'", gotKey)
	}
	if !strings.Contains(gotQuery, "nations(id: 42, first: 1)") {
		t.Errorf("Expected id lookup query, got %s", gotQuery)
	}

	if nation.ID != 42 || nation.Name != "Testland" {
		t.Errorf("Unexpected identity: %d %s", nation.ID, nation.Name)
	}
	if nation.Score != 1000.5 {
		t.Errorf("Expected score 1000.5, got %f", nation.Score)
	}
	if nation.Alliance == nil || nation.Alliance.ID != 7 || len(nation.Alliance.Treaties) != 1 {
		t.Fatalf("Expected alliance 7 with one treaty, got %+v", nation.Alliance)
	}
	if nation.Alliance.Treaties[0].Alliance2ID != 8 || nation.Alliance.Treaties[0].TreatyType != "MDP" {
		t.Errorf("Unexpected treaty %+v", nation.Alliance.Treaties[0])
	}
	if len(nation.Cities) != 1 || nation.Cities[0].Infrastructure != 1500.25 || nation.Cities[0].Subway != 0 {
		t.Errorf("Unexpected cities %+v", nation.Cities)
	}
	if len(nation.Wars) != 1 || len(nation.Wars[0].Attacks) != 1 {
		t.Fatalf("Expected one war with one attack, got %+v", nation.Wars)
	}
	if nation.Wars[0].Attacks[0].MoneyStolen != 1200.50 {
		t.Errorf("Expected money stolen 1200.50, got %f", nation.Wars[0].Attacks[0].MoneyStolen)
	}
	expectedDate := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if !nation.Wars[0].Date.Equal(expectedDate) {
		t.Errorf("Expected war date %v, got %v", expectedDate, nation.Wars[0].Date)
	}
	if client.GetAPICallCount() != 1 {
		t.Errorf("Expected 1 API call, got %d", client.GetAPICallCount())
	}
}

func TestFetchNationByIDNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"nations":{"data":[]}}}`))
	})

	_, err := client.FetchNationByID(context.Background(), 1)
	if !errors.Is(err, app.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFetchNationsPage(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		gotQuery = body["query"]
		w.Write([]byte(`{"data":{"nations":{
			"data":[{"id":"1","nation_name":"A"},{"id":"2","nation_name":"B","cities":null,"wars":null}],
			"paginatorInfo":{"hasMorePages":true,"currentPage":3}}}}`))
	})

	page, err := client.FetchNationsPage(context.Background(), 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(gotQuery, "nations(page: 3, first: 500)") {
		t.Errorf("Expected paged query, got %s", gotQuery)
	}
	if len(page.Nations) != 2 {
		t.Fatalf("Expected 2 nations, got %d", len(page.Nations))
	}
	if !page.HasMorePages || page.CurrentPage != 3 {
		t.Errorf("Expected hasMorePages=true currentPage=3, got %v %d", page.HasMorePages, page.CurrentPage)
	}
	if page.Nations[1].Cities == nil || page.Nations[1].Wars == nil {
		t.Error("Expected null lists to be normalized to empty slices")
	}
}

func TestRunQueryErrors(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		body     string
		expected error
	}{
		{"Unauthorized", http.StatusUnauthorized, "", app.ErrAuthentication},
		{"Forbidden", http.StatusForbidden, "", app.ErrAuthorization},
		{"ServerError", http.StatusInternalServerError, "", app.ErrTransport},
		{"GraphQLErrors", http.StatusOK, `{"errors":[{"message":"bad field"},{}]}`, app.ErrProtocol},
		{"MissingData", http.StatusOK, `{}`, app.ErrProtocol},
		{"NullData", http.StatusOK, `{"data":null}`, app.ErrProtocol},
		{"InvalidJSON", http.StatusOK, `not json`, app.ErrProtocol},
		{"MissingNations", http.StatusOK, `{"data":{}}`, app.ErrProtocol},
		{"MissingNationData", http.StatusOK, `{"data":{"nations":{}}}`, app.ErrProtocol},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			_, err := client.FetchNationsPage(context.Background(), 1)
			if !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestGraphQLErrorMessagesJoined(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"bad field"},{}]}`))
	})

	_, err := client.FetchNationByID(context.Background(), 1)
	if err == nil || !strings.Contains(err.Error(), "bad field; Unknown GraphQL error") {
		t.Errorf("Expected joined GraphQL messages, got %v", err)
	}
}

func TestRateLimitRetry(t *testing.T) {
	t.Run("RetrySucceeds", func(t *testing.T) {
		var calls int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(nationPayload))
		})

		nation, err := client.FetchNationByID(context.Background(), 42)
		if err != nil {
			t.Fatalf("Expected retry to succeed, got %v", err)
		}
		if nation.ID != 42 {
			t.Errorf("Expected nation 42, got %d", nation.ID)
		}
		if atomic.LoadInt32(&calls) != 2 {
			t.Errorf("Expected exactly 2 requests, got %d", calls)
		}
	})

	t.Run("RetryFails", func(t *testing.T) {
		var calls int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.FetchNationByID(context.Background(), 42)
		if !errors.Is(err, app.ErrTransport) {
			t.Errorf("Expected ErrTransport, got %v", err)
		}
		if atomic.LoadInt32(&calls) != 2 {
			t.Errorf("Expected exactly 2 requests (no second retry), got %d", calls)
		}
	})
}

func TestRequestDelayHonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Expected no request after context cancellation")
	})
	client.requestDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchNationsPage(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClientWithConfig("k", url, config.RequestConfig{Timeout: time.Second})
	_, err := client.FetchNationsPage(context.Background(), 1)
	if !errors.Is(err, app.ErrTransport) {
		t.Errorf("Expected ErrTransport, got %v", err)
	}
}
