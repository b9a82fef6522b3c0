package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/npezzotti/go-molehunt/internal/config"
	"github.com/npezzotti/go-molehunt/internal/database"
	"github.com/npezzotti/go-molehunt/internal/testutil"
	"github.com/npezzotti/go-molehunt/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeWs(t *testing.T) {
	mockRepo := &database.MockGameRepository{}
	mockStats := &mockStatsRelaxed{}

	mockRepo.On("GetMessagesSince", 0).Return([]database.Message{
		{Id: 1, AccountId: 42, Username: "player", Content: "hello", CreatedAt: time.Now().UTC()},
	}, nil).Once()
	mockRepo.On("GetMessagesSince", 1).Return([]database.Message{}, nil)

	mux := http.NewServeMux()
	app := NewMolehuntApp(mux, testutil.TestLogger(t), mockRepo, mockStats, &config.Config{
		SigningKey:   []byte("test-signing-key"),
		PollInterval: 10 * time.Millisecond,
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	token, err := app.createJwtForSession(42, time.Hour)
	require.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	hdr := http.Header{}
	hdr.Add("Cookie", (&http.Cookie{Name: tokenCookieKey, Value: token}).String())

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, hdr)
	require.NoError(t, err, "expected the websocket upgrade to succeed")
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var batch []types.ChatMessage
	require.NoError(t, conn.ReadJSON(&batch), "expected a delivered batch")
	require.Len(t, batch, 1)
	assert.Equal(t, "hello", batch[0].Content)
	assert.Equal(t, 1, batch[0].Id)
}

func TestServeWsUnauthenticated(t *testing.T) {
	mux := http.NewServeMux()
	NewMolehuntApp(mux, testutil.TestLogger(t), &database.MockGameRepository{}, nil, &config.Config{
		SigningKey: []byte("test-signing-key"),
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err, "expected the upgrade to be refused without a session")
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// mockStatsRelaxed tolerates stream counter updates racing test teardown.
type mockStatsRelaxed struct{}

func (m *mockStatsRelaxed) Incr(string)           {}
func (m *mockStatsRelaxed) Decr(string)           {}
func (m *mockStatsRelaxed) RegisterMetric(string) {}
func (m *mockStatsRelaxed) Run()                  {}
