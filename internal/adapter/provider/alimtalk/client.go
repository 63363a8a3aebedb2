// Package alimtalk sends notifications through the Kakao Alimtalk API.
package alimtalk

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/heartmarshall/carematch-backend/internal/adapter/notify"
	"github.com/heartmarshall/carematch-backend/internal/config"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

const sendPath = "/v2/api/talk/memo/default/send"

var phonePattern = regexp.MustCompile(`^01[0-9]{8,9}$`)

// Client delivers notifications as Alimtalk template messages.
type Client struct {
	http   *resty.Client
	apiKey string
	log    *slog.Logger
}

type sendResponse struct {
	ResultCode json.Number `json:"result_code"`
}

// NewClient creates a Client. 5xx responses and network errors are retried
// cfg.RetryCount times.
func NewClient(logger *slog.Logger, cfg config.AlimtalkConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		apiKey: cfg.APIKey,
		log:    logger.With("adapter", "alimtalk"),
	}
}

// Send posts n to the Alimtalk API. Invalid recipients and 4xx answers wrap
// notify.ErrUndeliverable.
func (c *Client) Send(ctx context.Context, n domain.Notification) error {
	phone := NormalizePhone(n.Recipient.Phone)
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("alimtalk: invalid phone number for user %s: %w", n.Recipient.UserID, notify.ErrUndeliverable)
	}

	receivers, err := json.Marshal([]string{phone})
	if err != nil {
		return fmt.Errorf("alimtalk: encode receivers: %w", err)
	}

	form := make(map[string]string, len(n.Vars)+2)
	for k, v := range n.Vars {
		form[k] = v
	}
	form["template_id"] = n.Kind.String()
	form["receiver_uuids"] = string(receivers)

	var result sendResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetFormData(form).
		SetResult(&result).
		Post(sendPath)
	if err != nil {
		return fmt.Errorf("alimtalk: request failed: %w", err)
	}

	if resp.IsError() {
		c.log.WarnContext(ctx, "alimtalk rejected",
			slog.String("kind", n.Kind.String()),
			slog.Int("status", resp.StatusCode()),
			slog.String("body", resp.String()),
		)
		if resp.StatusCode() < http.StatusInternalServerError {
			return fmt.Errorf("alimtalk: status %d: %w", resp.StatusCode(), notify.ErrUndeliverable)
		}
		return fmt.Errorf("alimtalk: status %d", resp.StatusCode())
	}

	c.log.DebugContext(ctx, "alimtalk sent",
		slog.String("kind", n.Kind.String()),
		slog.String("user_id", n.Recipient.UserID),
		slog.String("result_code", result.ResultCode.String()),
	)
	return nil
}

// NormalizePhone strips dashes and whitespace: 010-1234-5678 -> 01012345678.
func NormalizePhone(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
}
