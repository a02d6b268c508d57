package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/kagi-search/internal/search"
)

type Client struct {
	Response *search.SearchResponse
	Error    error
	Delay    time.Duration

	CallCount   int
	LastRequest search.SearchRequest
	AllRequests []search.SearchRequest

	mu sync.Mutex
}

func New() *Client {
	return &Client{}
}

func (c *Client) WithResults(results []search.SearchResult) *Client {
	c.Response = &search.SearchResponse{
		Meta: search.Meta{ID: "mock", Node: "mock", Ms: 42, APIBalance: 10},
		Data: results,
	}
	return c
}

func (c *Client) WithResponse(resp *search.SearchResponse) *Client {
	c.Response = resp
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) Search(ctx context.Context, req search.SearchRequest) (*search.SearchResponse, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastRequest = req
	c.AllRequests = append(c.AllRequests, req)
	delay := c.Delay
	err := c.Error
	resp := c.Response
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if err != nil {
		return nil, err
	}

	if resp == nil {
		return &search.SearchResponse{}, nil
	}
	return resp, nil
}

func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CallCount
}
