package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newswire/logger"
)

const defaultAPIBase = "https://api.telegram.org"

const pollTimeoutSeconds = 30

// Bot is a long-polling Telegram echo bot. It answers /start and
// /help with a greeting and echoes any other text back to the sender.
// It is a standalone artifact, not connected to the ingestion
// pipeline.
type Bot struct {
	token   string
	apiBase string
	client  *http.Client
	offset  int64
}

func New(token string) *Bot {
	return &Bot{
		token:   token,
		apiBase: defaultAPIBase,
		// Poll requests block server-side for pollTimeoutSeconds;
		// the client timeout must exceed that.
		client: &http.Client{Timeout: (pollTimeoutSeconds + 10) * time.Second},
	}
}

// NewWithAPIBase points the bot at a different API host, used in tests.
func NewWithAPIBase(token, apiBase string) *Bot {
	b := New(token)
	b.apiBase = apiBase
	return b
}

type update struct {
	UpdateID int64    `json:"update_id"`
	Message  *message `json:"message"`
}

type message struct {
	MessageID int64  `json:"message_id"`
	Chat      chat   `json:"chat"`
	Text      string `json:"text"`
}

type chat struct {
	ID int64 `json:"id"`
}

type updatesResponse struct {
	OK     bool     `json:"ok"`
	Result []update `json:"result"`
}

// Run polls for updates until ctx is cancelled. Poll failures are
// logged and retried after a short pause.
func (b *Bot) Run(ctx context.Context) error {
	if b.token == "" {
		return fmt.Errorf("bot token is empty")
	}

	logger.Log.Info("bot running...")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := b.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Log.Errorf("failed to poll updates: %v", err)
			time.Sleep(3 * time.Second)
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= b.offset {
				b.offset = u.UpdateID + 1
			}
			if u.Message == nil || u.Message.Text == "" {
				continue
			}
			if err := b.reply(ctx, u.Message, Reply(u.Message.Text)); err != nil {
				logger.Log.Errorf("failed to send reply: %v", err)
			}
		}
	}
}

// Reply builds the response text for an incoming message.
func Reply(text string) string {
	cmd := strings.SplitN(strings.TrimSpace(text), " ", 2)[0]
	// Commands may carry a bot-name suffix in group chats.
	cmd = strings.SplitN(cmd, "@", 2)[0]
	switch cmd {
	case "/start", "/help":
		return "👋 Hi! I'm alive!"
	default:
		return fmt.Sprintf("You said: %s", text)
	}
}

func (b *Bot) getUpdates(ctx context.Context) ([]update, error) {
	endpoint := fmt.Sprintf("%s/bot%s/getUpdates", b.apiBase, b.token)
	q := url.Values{}
	q.Set("timeout", strconv.Itoa(pollTimeoutSeconds))
	q.Set("offset", strconv.FormatInt(b.offset, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram error: %s", resp.Status)
	}

	var out updatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, fmt.Errorf("telegram response not ok")
	}
	return out.Result, nil
}

func (b *Bot) reply(ctx context.Context, to *message, text string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", b.apiBase, b.token)
	form := url.Values{}
	form.Set("chat_id", strconv.FormatInt(to.Chat.ID, 10))
	form.Set("text", text)
	form.Set("reply_to_message_id", strconv.FormatInt(to.MessageID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}
	return nil
}
