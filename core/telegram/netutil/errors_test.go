package netutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"
)

func TestRedactToken(t *testing.T) {
	in := `Post "https://api.telegram.org/bot123456:ABC-def_9/sendMessage": EOF`
	got := RedactToken(in)
	assert.NotContains(t, got, "123456:ABC")
	assert.Contains(t, got, "bot<redacted>/sendMessage")
}

func TestClassify(t *testing.T) {
	dial := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	cases := map[string]struct {
		err  error
		want string
	}{
		"nil":       {nil, ""},
		"cancelled": {fmt.Errorf("send: %w", context.Canceled), KindCancelled},
		"deadline":  {context.DeadlineExceeded, KindTimeout},
		"dns":       {&net.DNSError{Err: "no such host", Name: "api.telegram.org"}, KindDNS},
		"dial":      {dial, KindNetwork},
		"api 400":   {tele.NewError(400, "Bad Request: message is not modified"), KindHTTP4xx},
		"api 502":   {tele.NewError(502, "Bad Gateway"), KindHTTP5xx},
		"other":     {errors.New("boom"), KindOther},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestIsTransient(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.True(t, IsTransient(&net.OpError{Op: "dial", Err: errors.New("refused")}))
	assert.False(t, IsTransient(errors.New("plain")))
}

func TestIsNotModified(t *testing.T) {
	assert.True(t, IsNotModified(tele.ErrSameMessageContent))
	assert.True(t, IsNotModified(fmt.Errorf("edit menu: %w", tele.ErrMessageNotModified)))
	assert.True(t, IsNotModified(tele.NewError(400, "Bad Request: message is not modified: specified new message content and reply markup are exactly the same")))
	assert.True(t, IsNotModified(fmt.Errorf("edit: %w", errors.New("telegram: message is not modified (400)"))))
	assert.False(t, IsNotModified(errors.New("message to edit not found")))
	assert.False(t, IsNotModified(nil))
}
