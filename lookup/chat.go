package lookup

import(
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/skypies/routedb/config"
)

// Chat talks to an OpenAI style chat completions endpoint.
type Chat struct {
	Endpoint    string  // the full URL, e.g. https://api.openai.com/v1/chat/completions
	APIKey      string
	Model       string
	Temperature float64

	Client      *http.Client
	Limiter     *rate.Limiter // nil means no limit
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// {{{ ChatFromConfig

func ChatFromConfig(c *config.Config) (*Chat, error) {
	temp,err := c.Float("lookup.temperature")
	if err != nil { return nil, err }
	perSec,err := c.Float("lookup.rate")
	if err != nil { return nil, err }

	chat := Chat{
		Endpoint: c.Get("lookup.endpoint"),
		APIKey: c.Get("lookup.apikey"),
		Model: c.Get("lookup.model"),
		Temperature: temp,
		Client: &http.Client{Timeout: 60 * time.Second},
	}
	if perSec > 0 {
		chat.Limiter = rate.NewLimiter(rate.Limit(perSec), 1)
	}
	if chat.APIKey == "" {
		return nil, fmt.Errorf("lookup.apikey not set (try %sLOOKUP_APIKEY)", config.EnvPrefix)
	}

	return &chat, nil
}

// }}}
// {{{ c.Lookup

func (c *Chat)Lookup(ctx context.Context, prompt string) (string, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil { return "", err }
	}

	body,err := json.Marshal(chatRequest{
		Model: c.Model,
		Temperature: c.Temperature,
		Messages: []chatMessage{{Role:"user", Content:prompt}},
	})
	if err != nil { return "", err }

	req,err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil { return "", err }
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" { req.Header.Set("Authorization", "Bearer "+c.APIKey) }

	client := c.Client
	if client == nil { client = http.DefaultClient }
	resp,err := client.Do(req)
	if err != nil { return "", err }
	defer resp.Body.Close()

	data,err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil { return "", err }

	cr := chatResponse{}
	jsonErr := json.Unmarshal(data, &cr)

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(data))
		if jsonErr == nil && cr.Error != nil { msg = cr.Error.Message }
		if len(msg) > 200 { msg = msg[:200] + "..." }
		return "", fmt.Errorf("chat endpoint: %s: %s", resp.Status, msg)
	} else if jsonErr != nil {
		return "", fmt.Errorf("chat endpoint: bad response: %v", jsonErr)
	} else if len(cr.Choices) == 0 {
		return "", fmt.Errorf("chat endpoint: no choices in response")
	}

	return cr.Choices[0].Message.Content, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
