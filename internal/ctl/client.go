package ctl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"offloadd/pkg/types"
)

// client is a thin HTTP client for the offloadd API.
type client struct {
	base string
	hc   *http.Client
}

func newClient(base string) *client {
	return &client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *client) do(method, path string, body any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.base+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.hc.Do(req)
}

// checkStatus drains and decodes the error payload for non-2xx responses.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	defer resp.Body.Close()
	var er types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Error != "" {
		return fmt.Errorf("%s (status %d)", er.Error, resp.StatusCode)
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}

func (c *client) status() (types.StatusResponse, error) {
	var st types.StatusResponse
	resp, err := c.do(http.MethodGet, "/status", nil)
	if err != nil {
		return st, err
	}
	if err := checkStatus(resp); err != nil {
		return st, err
	}
	defer resp.Body.Close()
	return st, json.NewDecoder(resp.Body).Decode(&st)
}

func (c *client) table() (string, error) {
	resp, err := c.do(http.MethodGet, "/resources/table", nil)
	if err != nil {
		return "", err
	}
	if err := checkStatus(resp); err != nil {
		return "", err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	return string(b), err
}

func (c *client) add(id, path, elem string) error {
	resp, err := c.do(http.MethodPost, "/resources", types.AddResourceRequest{ID: id, Path: path, ElemType: elem})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *client) remove(id string) error {
	resp, err := c.do(http.MethodDelete, "/resources/"+id, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *client) enable(device string, margin float64) error {
	resp, err := c.do(http.MethodPost, "/offload/enable", types.EnableRequest{Device: device, Margin: margin})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *client) disable() error {
	resp, err := c.do(http.MethodPost, "/offload/disable", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *client) invoke(id string) error {
	resp, err := c.do(http.MethodPost, "/resources/"+id+"/invoke", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}
