package keybrowser

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// KeysPage is one page of keys as returned by the API
type KeysPage struct {
	Keys       []string
	Page       int
	PagesCount int
}

type serverInfo struct {
	Name string
}

// Client talks to the RoriHost API rooted at the application's apiUrl
type Client struct {
	http *resty.Client
}

func NewClient(apiURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(apiURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "RoriHost/1.0")

	return &Client{http: client}
}

func (c *Client) Servers(ctx context.Context) ([]string, error) {
	var servers []serverInfo
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&servers).
		Get("servers")
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}

	names := make([]string, 0, len(servers))
	for _, s := range servers {
		names = append(names, s.Name)
	}
	return names, nil
}

func (c *Client) Keys(ctx context.Context, server, mask string, page int) (KeysPage, error) {
	var result KeysPage
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("server", server).
		SetQueryParam("mask", mask).
		SetQueryParam("page", strconv.Itoa(page)).
		SetResult(&result).
		Get("servers/{server}/keys")
	if err := checkResponse(resp, err); err != nil {
		return KeysPage{}, fmt.Errorf("failed to list keys of %s: %w", server, err)
	}
	return result, nil
}

func (c *Client) DeleteKey(ctx context.Context, server, key string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"server": server, "key": key}).
		Delete("servers/{server}/keys/{key}")
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		body := strings.TrimSpace(resp.String())
		if body == "" {
			return fmt.Errorf("server returned %s", resp.Status())
		}
		return fmt.Errorf("server returned %s: %s", resp.Status(), body)
	}
	return nil
}
