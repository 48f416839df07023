package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStubBot builds a BotAPI against a local stub server so sender tests run
// offline. sendCalls counts sendMessage requests.
func newStubBot(t *testing.T, sendCalls *atomic.Int32) *tgbotapi.BotAPI {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/sendMessage") {
			sendCalls.Add(1)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"result": map[string]any{
				"id": 1, "is_bot": true, "first_name": "bot", "username": "test_bot",
				"message_id": 1,
			},
		})
	}))
	t.Cleanup(srv.Close)

	bot, err := tgbotapi.NewBotAPIWithClient("token", srv.URL+"/bot%s/%s",
		&http.Client{Timeout: 2 * time.Second})
	require.NoError(t, err)
	return bot
}

func TestSender_Send(t *testing.T) {
	var calls atomic.Int32
	s := NewSender(newStubBot(t, &calls), 100)

	require.NoError(t, s.Send(context.Background(), 1, "hi"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestSender_CanceledContextSkipsDelivery(t *testing.T) {
	var calls atomic.Int32
	s := NewSender(newStubBot(t, &calls), 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, s.Send(ctx, 1, "hi"))
	require.Error(t, s.SendTaskReminder(ctx, 1, "hi", "t1"))
	assert.Equal(t, int32(0), calls.Load(), "no outbound call once the cycle is canceled")
}
