package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	waLog "go.mau.fi/whatsmeow/util/log"
)

const defaultGraphBaseURL = "https://graph.facebook.com/v20.0"

// MetaConfig holds the WhatsApp Cloud API credentials.
type MetaConfig struct {
	PhoneNumberID string
	AccessToken   string
	BaseURL       string
}

type metaGateway struct {
	client *http.Client
	cfg    MetaConfig
	log    waLog.Logger
}

// NewMetaGateway sends messages through the Meta WhatsApp Cloud API.
func NewMetaGateway(client *http.Client, cfg MetaConfig, log waLog.Logger) (Gateway, error) {
	if cfg.PhoneNumberID == "" || cfg.AccessToken == "" {
		return nil, errors.New("meta gateway requires phone number id and access token")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGraphBaseURL
	}
	return &metaGateway{client: client, cfg: cfg, log: log}, nil
}

type metaTextPayload struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             metaText `json:"text"`
}

type metaText struct {
	Body string `json:"body"`
}

func (g *metaGateway) SendText(ctx context.Context, phone, body string) error {
	payload := metaTextPayload{
		MessagingProduct: "whatsapp",
		To:               phone,
		Type:             "text",
		Text:             metaText{Body: body},
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", g.cfg.BaseURL, g.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	if g.log != nil {
		g.log.Debugf("meta send start to=%s", phone)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		if g.log != nil {
			g.log.Warnf("meta send error to=%s err=%v", phone, err)
		}
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if g.log != nil {
			g.log.Warnf("meta send failed to=%s status=%d", phone, resp.StatusCode)
		}
		return fmt.Errorf("meta api returned status %d", resp.StatusCode)
	}
	if g.log != nil {
		g.log.Debugf("meta send success to=%s status=%d", phone, resp.StatusCode)
	}
	return nil
}
