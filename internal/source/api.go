package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/arcanaland/grimoire/internal/card"
)

// API reads a page of random cards from the cards API
type API struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewAPI creates an API source. A nil client uses http.DefaultClient.
func NewAPI(url string, client *http.Client, logger *zap.Logger) *API {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{url: url, client: client, logger: logger}
}

// Name returns the endpoint being read
func (a *API) Name() string {
	return a.url
}

// Load performs a single GET request. There is no retry.
func (a *API) Load(ctx context.Context) ([]card.Card, error) {
	a.logger.Debug("fetching cards", zap.String("url", a.url))
	body, _, err := a.get(ctx, a.url)
	if err != nil {
		return nil, err
	}

	cards, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("fetched cards", zap.Int("count", len(cards)))
	return cards, nil
}

// Find reads one card from the single card endpoint, <base>/cards/{id}.
// The base is the configured URL without its query.
func (a *API) Find(ctx context.Context, id string) (card.Card, error) {
	cardURL, err := CardURL(a.url, id)
	if err != nil {
		return card.Card{}, err
	}

	a.logger.Debug("fetching card", zap.String("url", cardURL))
	body, status, err := a.get(ctx, cardURL)
	if status == http.StatusNotFound {
		return card.Card{}, fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}
	if err != nil {
		return card.Card{}, err
	}
	return decodeCardEnvelope(body)
}

// CardURL returns the single card endpoint for id next to the cards
// listing at listURL
func CardURL(listURL, id string) (string, error) {
	u, err := url.Parse(listURL)
	if err != nil {
		return "", fmt.Errorf("invalid cards API url: %w", err)
	}
	path := strings.TrimSuffix(u.Path, "/")
	if !strings.HasSuffix(path, "/cards") {
		path += "/cards"
	}
	u.Path = path + "/" + id
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// get performs one GET and returns the body of a 2xx response. The status
// code is returned whenever a response was received.
func (a *API) get(ctx context.Context, target string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, resp.StatusCode, fmt.Errorf("cards API returned %d: %s", resp.StatusCode, msg)
	}
	return body, resp.StatusCode, nil
}

// decodeCardEnvelope extracts the card object from a {"card": {...}} document
func decodeCardEnvelope(body []byte) (card.Card, error) {
	if !gjson.ValidBytes(body) {
		return card.Card{}, fmt.Errorf("response is not valid JSON")
	}
	raw := gjson.GetBytes(body, "card")
	if !raw.Exists() {
		return card.Card{}, fmt.Errorf("response has no card field")
	}
	if !raw.IsObject() {
		return card.Card{}, fmt.Errorf("card field is not an object")
	}

	var c card.Card
	if err := json.Unmarshal([]byte(raw.Raw), &c); err != nil {
		return card.Card{}, fmt.Errorf("decoding card: %w", err)
	}
	return c, nil
}

// decodeEnvelope extracts the cards array from a {"cards": [...]} document
func decodeEnvelope(body []byte) ([]card.Card, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	raw := gjson.GetBytes(body, "cards")
	if !raw.Exists() {
		return nil, fmt.Errorf("response has no cards field")
	}
	if !raw.IsArray() {
		return nil, fmt.Errorf("cards field is not an array")
	}

	var cards []card.Card
	if err := json.Unmarshal([]byte(raw.Raw), &cards); err != nil {
		return nil, fmt.Errorf("decoding cards: %w", err)
	}
	if cards == nil {
		cards = []card.Card{}
	}
	return cards, nil
}
