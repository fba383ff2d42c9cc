// Package notify clients HTTP des puits de notification (FCM et passerelle SMS).
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	appnotify "github.com/famadiop1025/Bokkdej/internal/application/notify"
)

var _ appnotify.PushSender = (*FCMClient)(nil)

// FCMClient puits push sur l'API HTTP legacy de Firebase Cloud Messaging.
type FCMClient struct {
	endpoint  string
	serverKey string
	client    *http.Client
}

// NewFCMClient construit le client. endpoint vide = valeur par défaut de FCM.
func NewFCMClient(endpoint, serverKey string, timeout time.Duration) *FCMClient {
	if endpoint == "" {
		endpoint = "https://fcm.googleapis.com/fcm/send"
	}
	return &FCMClient{
		endpoint:  endpoint,
		serverKey: serverKey,
		client:    &http.Client{Timeout: timeout},
	}
}

type fcmPayload struct {
	To           string          `json:"to"`
	Notification fcmNotification `json:"notification"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound"`
}

// SendPush envoie une notification à un jeton d'appareil.
func (c *FCMClient) SendPush(ctx context.Context, token, title, body string) error {
	payload, err := json.Marshal(fcmPayload{
		To:           token,
		Notification: fcmNotification{Title: title, Body: body, Sound: "default"},
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "key="+c.serverKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("fcm: statut %d", resp.StatusCode)
	}
	return nil
}
