package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	newsModel "github.com/akashvani/voicenews/backend/internal/model/news"
)

// Client talks to a NewsAPI-compatible provider. It is a thin pass-through:
// no retries, no caching, articles returned in provider order.
type Client struct {
	apiKey  string
	baseURL string
	country string
	httpc   *http.Client
}

// NewClient builds a provider client. The timeout applies per request on top
// of whatever deadline the caller's context carries.
func NewClient(apiKey, baseURL, country string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		country: country,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// FetchByCategory returns up to limit top headlines for a category.
func (c *Client) FetchByCategory(ctx context.Context, category newsModel.Category, limit int) ([]newsModel.Article, error) {
	q := url.Values{}
	q.Set("category", string(category))
	if c.country != "" {
		q.Set("country", c.country)
	}
	return c.fetch(ctx, "/top-headlines", q, limit)
}

// Search returns up to limit articles matching a free-form query, newest first.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]newsModel.Article, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	return c.fetch(ctx, "/everything", q, limit)
}

type apiArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type apiResponse struct {
	Status   string       `json:"status"`
	Message  string       `json:"message"`
	Articles []apiArticle `json:"articles"`
}

func (c *Client) fetch(ctx context.Context, path string, q url.Values, limit int) ([]newsModel.Article, error) {
	q.Set("apiKey", c.apiKey)
	q.Set("pageSize", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || payload.Status == "error" {
		return nil, fmt.Errorf("news provider returned %d: %s", resp.StatusCode, payload.Message)
	}

	articles := make([]newsModel.Article, 0, limit)
	for _, a := range payload.Articles {
		if len(articles) == limit {
			break
		}
		// Timestamps are RFC3339 when present; a malformed one is not worth
		// dropping the article over.
		publishedAt, _ := time.Parse(time.RFC3339, a.PublishedAt)
		articles = append(articles, newsModel.Article{
			Title:       a.Title,
			SourceName:  a.Source.Name,
			Summary:     a.Description,
			URL:         a.URL,
			PublishedAt: publishedAt,
		})
	}
	return articles, nil
}
