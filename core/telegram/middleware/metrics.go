package middleware

import (
	tele "gopkg.in/telebot.v4"
)

const (
	keyMessages  = "messages"
	keyDocuments = "documents"
	keyKeyboard  = "kb"
)

// Counters summarises what a handler sent back for one update.
type Counters struct {
	Messages  int
	Documents int
	Keyboard  bool
}

// metricsContext wraps tele.Context and counts outgoing messages.
type metricsContext struct{ tele.Context }

func (m metricsContext) count(what any, opts []any) {
	key := keyMessages
	if _, ok := what.(*tele.Document); ok {
		key = keyDocuments
	}
	n, _ := m.Get(key).(int)
	m.Set(key, n+1)
	if hasKeyboard(opts) {
		m.Set(keyKeyboard, true)
	}
}

func hasKeyboard(opts []any) bool {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return true
			}
		case *tele.ReplyMarkup:
			if v != nil {
				return true
			}
		}
	}
	return false
}

// Send proxies tele.Context.Send. Documents are counted apart from text.
func (m metricsContext) Send(what any, opts ...any) error {
	err := m.Context.Send(what, opts...)
	if err == nil {
		m.count(what, opts)
	}
	return err
}

func (m metricsContext) Reply(what any, opts ...any) error {
	err := m.Context.Reply(what, opts...)
	if err == nil {
		m.count(what, opts)
	}
	return err
}

// Edit counts in-place menu transitions as messages too.
func (m metricsContext) Edit(what any, opts ...any) error {
	err := m.Context.Edit(what, opts...)
	if err == nil {
		m.count(what, opts)
	}
	return err
}

// MessageMetricsMiddleware resets the counters and hands the wrapped context on.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set(keyMessages, 0)
		c.Set(keyDocuments, 0)
		c.Set(keyKeyboard, false)
		return next(metricsContext{Context: c})
	}
}

// GetCounters reads the counters stored by MessageMetricsMiddleware.
func GetCounters(c tele.Context) Counters {
	msgs, _ := c.Get(keyMessages).(int)
	docs, _ := c.Get(keyDocuments).(int)
	kb, _ := c.Get(keyKeyboard).(bool)
	return Counters{Messages: msgs, Documents: docs, Keyboard: kb}
}
