package client

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/habitforge/backend/pkg/xcontext"
)

// NotificationCaller pushes an achievement notification to the delivery
// gateway. Delivery is fire-and-forget from the engine's point of view; the
// gateway logs its own failures and nothing here retries.
type NotificationCaller interface {
	Notify(ctx context.Context, userID, title, body string, payload map[string]any) error
	Close()
}

type notificationCaller struct {
	client *rpc.Client
}

func NewNotificationCaller(client *rpc.Client) *notificationCaller {
	return &notificationCaller{client: client}
}

func (c *notificationCaller) Notify(
	ctx context.Context, userID, title, body string, payload map[string]any,
) error {
	return c.client.CallContext(ctx, nil, c.fname(ctx, "notify"), map[string]any{
		"user_id": userID,
		"title":   title,
		"body":    body,
		"payload": payload,
	})
}

func (c *notificationCaller) Close() {
	c.client.Close()
}

func (c *notificationCaller) fname(ctx context.Context, funcName string) string {
	return fmt.Sprintf("%s_%s", xcontext.Configs(ctx).Notification.GatewayRPCServer.RPCName, funcName)
}
