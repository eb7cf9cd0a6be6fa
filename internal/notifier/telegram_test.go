package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	assert.Nil(t, Split("  \n", 10))
	assert.Equal(t, []string{"short"}, Split("short", 10))
	assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, Split("aaaa\nbbbb\ncccc", 10))
	assert.Equal(t, []string{"abcdefghij", "klm"}, Split("abcdefghijklm", 10))

	// multi-byte runes are never split
	parts := Split(strings.Repeat("é", 6), 5)
	for _, p := range parts {
		assert.LessOrEqual(t, len(p), 5)
		assert.True(t, strings.Count(p, "é")*2 == len(p))
	}
	assert.Equal(t, strings.Repeat("é", 6), strings.Join(parts, ""))
}

func TestSplit_InvalidUTF8(t *testing.T) {
	text := "a" + strings.Repeat("\x80", 5000)

	done := make(chan []string, 1)
	go func() { done <- Split(text, MaxMessageLen) }()

	select {
	case parts := <-done:
		require.Len(t, parts, 2)
		assert.Len(t, parts[0], MaxMessageLen)
		assert.Equal(t, text, strings.Join(parts, ""))
	case <-time.After(2 * time.Second):
		t.Fatal("Split did not return for input without rune boundaries")
	}
}

type fakeTelegram struct {
	mu       sync.Mutex
	texts    []string
	failures int
}

func (f *fakeTelegram) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottok/sendMessage", r.URL.Path)
		var payload map[string]any
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload)) {
			return
		}
		assert.Equal(t, "42", payload["chat_id"])

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failures > 0 {
			f.failures--
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		f.texts = append(f.texts, payload["text"].(string))
	}
}

func TestSendReport(t *testing.T) {
	fake := &fakeTelegram{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	n := NewTelegramNotifier("tok", "42", "")
	n.APIBase = srv.URL

	report := strings.Repeat("line of report text\n", 400)
	require.NoError(t, n.SendReport(context.Background(), report, 0))
	require.Len(t, fake.texts, 2)
	for _, txt := range fake.texts {
		assert.LessOrEqual(t, len(txt), MaxMessageLen)
	}
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	fake := &fakeTelegram{failures: 10}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	n := NewTelegramNotifier("tok", "42", "")
	n.APIBase = srv.URL

	err := n.SendWithRetry(context.Background(), "hello", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Empty(t, fake.texts)
}

func TestSendWithRetry_ContextCancelled(t *testing.T) {
	fake := &fakeTelegram{failures: 10}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	n := NewTelegramNotifier("tok", "42", "")
	n.APIBase = srv.URL

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := n.SendWithRetry(ctx, "hello", 3)
	assert.ErrorIs(t, err, context.Canceled)
}
