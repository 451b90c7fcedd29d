package webhook

import (
	"bytes"
	"encoding/json"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Notifier delivers committed marketplace events to configured webhook
// endpoints.
type Notifier interface {
	HandleEvent(msg interface{})
}

type notifier struct {
	urls   []string
	client *retryablehttp.Client
}

func NewNotifier(urls []string, client *retryablehttp.Client) Notifier {
	return notifier{urls, client}
}

func (n notifier) HandleEvent(msg interface{}) {
	if len(n.urls) == 0 {
		return
	}

	body, err := json.Marshal(msg)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Webhook: Failed to marshal event")
		return
	}

	for _, url := range n.urls {
		req, err := retryablehttp.NewRequest("POST", url, bytes.NewReader(body))
		if err != nil {
			zap.L().With(zap.Error(err), zap.String("url", url)).Error("Webhook: Failed to create request")
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			zap.L().With(zap.Error(err), zap.String("url", url)).Error("Webhook: Failed to deliver event")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 300 {
			zap.L().With(zap.Int("status", resp.StatusCode), zap.String("url", url)).Error("Webhook: Event delivery rejected")
		}
	}
}
