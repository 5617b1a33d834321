package catapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/mittens/internal/domain"
	"github.com/mmcdole/mittens/internal/likes"
	"github.com/mmcdole/mittens/internal/metrics"
	"github.com/patrickmn/go-cache"
)

const (
	DefaultBaseURL  = "https://api.thecatapi.com/v1"
	DefaultVotesTTL = 5 * time.Minute
	defaultTimeout  = 30 * time.Second
)

// Config configures a Client. Zero values fall back to defaults.
type Config struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	VotesTTL time.Duration
}

// Client implements domain.CatRepository against the cat API.
// The vote-list cache is owned by the instance; create one per user session.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	votes      *cache.Cache
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewClient creates a new cat API client
func NewClient(cfg Config, m *metrics.Metrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.VotesTTL <= 0 {
		cfg.VotesTTL = DefaultVotesTTL
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		// No janitor: expired entries are evicted on lookup
		votes:   cache.New(cfg.VotesTTL, 0),
		metrics: m,
		logger:  logger,
	}
}

// HTTPClient exposes the underlying transport client (used by tests to install mocks)
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// doRequest performs an authenticated JSON request and decodes the response into dest.
// Errors are domain sentinels; callers wrap them in a FetchError.
func (c *Client) doRequest(ctx context.Context, op, method, path string, query url.Values, payload, dest any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	requestID := uuid.NewString()
	c.logger.Debug("cat api request", "op", op, "method", method, "url", reqURL, "request_id", requestID)

	start := time.Now()
	err = c.send(req, requestID, dest)
	c.metrics.ObserveRequest(op, err, time.Since(start))
	return err
}

func (c *Client) send(req *http.Request, requestID string, dest any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("cat api request failed", "error", err, "request_id", requestID)
		return fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Error("cat api request error", "status", resp.StatusCode, "body", string(data), "request_id", requestID)
		return fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	if dest == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		c.logger.Error("cat api returned an empty body", "status", resp.StatusCode, "request_id", requestID)
		return fmt.Errorf("failed to parse response: %w", domain.ErrEmptyResponse)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// ListBreeds returns all breeds
func (c *Client) ListBreeds(ctx context.Context) ([]domain.Breed, error) {
	var resp []breedDTO
	if err := c.doRequest(ctx, "list_breeds", http.MethodGet, "/breeds", nil, nil, &resp); err != nil {
		return nil, domain.NewFetchError(domain.MsgListBreeds, err)
	}
	return mapBreeds(resp), nil
}

// SearchBreeds runs the provider's breed name search
func (c *Client) SearchBreeds(ctx context.Context, query string) ([]domain.Breed, error) {
	q := url.Values{}
	q.Set("q", query)

	var resp []breedDTO
	if err := c.doRequest(ctx, "search_breeds", http.MethodGet, "/breeds/search", q, nil, &resp); err != nil {
		return nil, domain.NewFetchError(domain.MsgSearchBreeds, err)
	}
	return mapBreeds(resp), nil
}

// SearchImages returns images matching criteria
func (c *Client) SearchImages(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Image, error) {
	var resp []imageDTO
	if err := c.doRequest(ctx, "search_images", http.MethodGet, "/images/search", criteriaQuery(criteria), nil, &resp); err != nil {
		return nil, domain.NewFetchError(domain.MsgSearchImages, err)
	}
	return mapImages(resp), nil
}

// GetImageByID returns one image
func (c *Client) GetImageByID(ctx context.Context, id string) (*domain.Image, error) {
	var resp imageDTO
	path := "/images/" + url.PathEscape(id)
	if err := c.doRequest(ctx, "get_image", http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, domain.NewFetchError(domain.MsgGetImage, err)
	}
	img := mapImage(resp)
	return &img, nil
}

// SubmitVote records a vote. The subject's cached vote list is dropped
// whether or not the write succeeds.
func (c *Client) SubmitVote(ctx context.Context, imageID, subID string, value int) (int, error) {
	defer c.InvalidateVotes(subID)

	var resp createdDTO
	body := voteRequestDTO{ImageID: imageID, SubID: subID, Value: value}
	if err := c.doRequest(ctx, "submit_vote", http.MethodPost, "/votes", nil, body, &resp); err != nil {
		return 0, domain.NewFetchError(domain.MsgSubmitVote, err)
	}
	c.logger.Info("vote submitted", "imageID", imageID, "subID", subID, "value", value, "voteID", resp.ID)
	return resp.ID, nil
}

// ListVotes returns the vote list for subID, served from cache within the TTL
func (c *Client) ListVotes(ctx context.Context, subID string) ([]domain.Vote, error) {
	key := voteCacheKey(subID)

	if cached, found := c.votes.Get(key); found {
		if votes, ok := cached.([]domain.Vote); ok {
			c.metrics.CacheHit()
			c.logger.Debug("vote cache hit", "key", key, "count", len(votes))
			return append([]domain.Vote(nil), votes...), nil
		}
	}
	// Get reports expired entries as missing; drop them so at most one entry exists per key
	c.votes.Delete(key)
	c.metrics.CacheMiss()

	var q url.Values
	if subID != "" {
		q = url.Values{}
		q.Set("sub_id", subID)
	}

	var resp []voteDTO
	if err := c.doRequest(ctx, "list_votes", http.MethodGet, "/votes", q, nil, &resp); err != nil {
		return nil, domain.NewFetchError(domain.MsgListVotes, err)
	}

	votes := mapVotes(resp)
	c.votes.Set(key, votes, cache.DefaultExpiration)
	c.logger.Debug("vote cache stored", "key", key, "count", len(votes))
	return append([]domain.Vote(nil), votes...), nil
}

// InvalidateVotes drops the cached vote list for subID
func (c *Client) InvalidateVotes(subID string) {
	c.votes.Delete(voteCacheKey(subID))
}

// GetLikedImages returns one page of the subject's liked images
func (c *Client) GetLikedImages(ctx context.Context, subID string, page, pageSize int) (domain.LikedPage, error) {
	p, err := likes.ResolvePage(ctx, c, subID, page, pageSize, c.logger)
	if err != nil {
		return domain.LikedPage{}, domain.NewFetchError(domain.MsgLikedImages, err)
	}
	return p.LikedPage(), nil
}

// AddFavorite bookmarks an image for subID
func (c *Client) AddFavorite(ctx context.Context, imageID, subID string) (int, error) {
	var resp createdDTO
	body := favoriteRequestDTO{ImageID: imageID, SubID: subID}
	if err := c.doRequest(ctx, "add_favorite", http.MethodPost, "/favourites", nil, body, &resp); err != nil {
		return 0, domain.NewFetchError(domain.MsgAddFavorite, err)
	}
	return resp.ID, nil
}

// ListFavorites returns favorites, filtered by subject when subID is set
func (c *Client) ListFavorites(ctx context.Context, subID string) ([]domain.Favorite, error) {
	var q url.Values
	if subID != "" {
		q = url.Values{}
		q.Set("sub_id", subID)
	}

	var resp []favoriteDTO
	if err := c.doRequest(ctx, "list_favorites", http.MethodGet, "/favourites", q, nil, &resp); err != nil {
		return nil, domain.NewFetchError(domain.MsgListFavorites, err)
	}
	return mapFavorites(resp), nil
}

// RemoveFavorite deletes a favorite by id
func (c *Client) RemoveFavorite(ctx context.Context, id int) error {
	path := "/favourites/" + strconv.Itoa(id)
	if err := c.doRequest(ctx, "remove_favorite", http.MethodDelete, path, nil, nil, nil); err != nil {
		return domain.NewFetchError(domain.MsgRemoveFavorite, err)
	}
	return nil
}

// defaultVoteKey is used when no subject is given. Shared by all anonymous
// callers of one client, which is why clients are per session.
const defaultVoteKey = "default"

func voteCacheKey(subID string) string {
	if subID == "" {
		return defaultVoteKey
	}
	return subID
}

func criteriaQuery(c domain.SearchCriteria) url.Values {
	q := url.Values{}
	if c.Limit > 0 {
		q.Set("limit", strconv.Itoa(c.Limit))
	}
	q.Set("page", strconv.Itoa(c.Page))
	if c.Order != "" {
		q.Set("order", c.Order)
	}
	if c.HasBreeds {
		q.Set("has_breeds", "true")
	}
	if c.MimeTypes != "" {
		q.Set("mime_types", c.MimeTypes)
	}
	if c.Size != "" {
		q.Set("size", c.Size)
	}
	if c.Format != "" {
		q.Set("format", c.Format)
	}
	if c.BreedIDs != "" {
		q.Set("breed_ids", c.BreedIDs)
	}
	return q
}
