package testutil

import (
	"context"
	"sync"
)

type Notification struct {
	UserID  string
	Title   string
	Body    string
	Payload map[string]any
}

type MockNotificationCaller struct {
	mutex sync.Mutex
	sent  []Notification

	Err error
}

func (c *MockNotificationCaller) Notify(
	ctx context.Context, userID, title, body string, payload map[string]any,
) error {
	if c.Err != nil {
		return c.Err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.sent = append(c.sent, Notification{UserID: userID, Title: title, Body: body, Payload: payload})
	return nil
}

func (c *MockNotificationCaller) Close() {}

func (c *MockNotificationCaller) Sent() []Notification {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return append([]Notification{}, c.sent...)
}
