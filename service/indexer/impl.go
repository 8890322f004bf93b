package indexer

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/vibemarket/goapi/base/backoff"
	bCtx "github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/base/log"
	"github.com/vibemarket/goapi/domain"
)

const (
	apiKeyHeader      = "X-API-KEY"
	defaultRetryLimit = 3
	backoffStart      = 500 * time.Millisecond
	backoffLimit      = 8 * time.Second
	ownedPageSize     = 50
)

func NewClient(cfg *ClientCfg) Client {
	retryLimit := cfg.RetryLimit
	if retryLimit == 0 {
		retryLimit = defaultRetryLimit
	}
	return &client{
		client:     cfg.HttpClient,
		baseUrl:    cfg.BaseUrl,
		timeout:    cfg.Timeout,
		apiKeys:    cfg.ApiKeys,
		retryLimit: retryLimit,
	}
}

type client struct {
	client     http.Client
	baseUrl    string
	timeout    time.Duration
	apiKeys    []string
	retryLimit int
}

func (c *client) GetCardMetadata(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) (*CardMetadataResp, error) {
	if len(c.apiKeys) == 0 {
		return nil, ErrNoApiKey
	}
	u := fmt.Sprintf("%s/metadata/%s/%s", c.baseUrl, collection.ToLowerStr(), tokenId)
	data, err := c.get(ctx, u, c.apiKeys[0])
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": u,
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}
	resp := &CardMetadataResp{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp, nil
}

func (c *client) GetOwnedCards(ctx bCtx.Ctx, owner domain.Address, status CardStatus, page int) (*OwnedCardsResp, error) {
	if len(c.apiKeys) == 0 {
		return nil, ErrNoApiKey
	}
	q := url.Values{}
	q.Set("owner", owner.ToLowerStr())
	q.Set("status", string(status))
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(ownedPageSize))
	u := fmt.Sprintf("%s/cards?%s", c.baseUrl, q.Encode())

	var lastErr error
	for _, key := range c.apiKeys {
		data, err := c.getWithRetry(ctx, u, key)
		if err != nil {
			// move on to the next key
			lastErr = err
			ctx.WithFields(log.Fields{
				"url": u,
				"err": err,
			}).Warn("indexer key exhausted, failing over")
			continue
		}
		resp := &OwnedCardsResp{}
		if err := json.Unmarshal(data, resp); err != nil {
			ctx.WithField("err", err).Error("json.Unmarshal failed")
			return nil, err
		}
		return resp, nil
	}
	return nil, lastErr
}

// getWithRetry retries rate-limited requests with exponential backoff before
// reporting the key as exhausted.
func (c *client) getWithRetry(ctx bCtx.Ctx, url, apiKey string) ([]byte, error) {
	bo := backoff.NewExponential(backoffStart, backoffLimit)
	var lastErr error
	for attempt := 0; attempt <= c.retryLimit; attempt++ {
		data, err := c.get(ctx, url, apiKey)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if err != ErrRateLimited {
			return nil, err
		}
		if err := bo.Backoff(ctx); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *client) get(ctx bCtx.Ctx, url, apiKey string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	req.Header.Set(apiKeyHeader, apiKey)
	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, statusError(resp.StatusCode)
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	return body, nil
}

// StatusError carries the upstream HTTP status so callers can surface it in
// placeholder metadata.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func statusError(code int) error {
	return &StatusError{StatusCode: code}
}
