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

var _ appnotify.SMSSender = (*SMSClient)(nil)

// SMSClient passerelle SMS HTTP générique : POST JSON {to, message} avec une
// clé d'API en en-tête.
type SMSClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewSMSClient construit le client de la passerelle.
func NewSMSClient(endpoint, apiKey string, timeout time.Duration) *SMSClient {
	return &SMSClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type smsPayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// SendSMS envoie un message à un numéro normalisé (indicatif inclus).
func (c *SMSClient) SendSMS(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(smsPayload{To: phone, Message: message})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("passerelle sms: statut %d", resp.StatusCode)
	}
	return nil
}
