package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// API is the data surface the dashboard consumes. *Client talks to a real
// backend; *Demo serves a generated dataset for offline use.
type API interface {
	Health() (*HealthResponse, error)
	Accounts() ([]Account, error)
	Transactions(accountID string, limit int) ([]Transaction, error)
	Budgets() ([]Budget, error)
	Offers() ([]Offer, error)
	OfferDetail(path string) (string, error)
}

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) SetToken(token string) {
	c.Token = token
}

func (c *Client) Health() (*HealthResponse, error) {
	resp, err := c.get("/health")
	if err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return &health, nil
}

func (c *Client) Accounts() ([]Account, error) {
	resp, err := c.get("/api/v1/accounts")
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	var wrapper struct {
		Accounts []Account `json:"accounts"`
		Count    int       `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return wrapper.Accounts, nil
}

// Transactions fetches transactions newest first. accountID filters to one
// account when non-empty; limit caps the result when positive.
func (c *Client) Transactions(accountID string, limit int) ([]Transaction, error) {
	q := url.Values{}
	if accountID != "" {
		q.Set("account", accountID)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/v1/transactions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	resp, err := c.get(path)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	var wrapper struct {
		Transactions []Transaction `json:"transactions"`
		Count        int           `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return wrapper.Transactions, nil
}

func (c *Client) Budgets() ([]Budget, error) {
	resp, err := c.get("/api/v1/budgets")
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	var wrapper struct {
		Budgets []Budget `json:"budgets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("decode budgets: %w", err)
	}
	return wrapper.Budgets, nil
}

func (c *Client) Offers() ([]Offer, error) {
	resp, err := c.get("/api/v1/offers")
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	var wrapper struct {
		Offers []Offer `json:"offers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("decode offers: %w", err)
	}
	return wrapper.Offers, nil
}

// OfferDetail fetches an offer's markdown body by its Detail path.
func (c *Client) OfferDetail(path string) (string, error) {
	resp, err := c.get(path)
	if err != nil {
		return "", fmt.Errorf("offer detail: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", c.parseError(resp)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read offer detail: %w", err)
	}
	return string(body), nil
}

func (c *Client) get(path string) (*http.Response, error) {
	req, err := http.NewRequest("GET", c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var apiErr ErrorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		return fmt.Errorf("API %d: %s: %s", resp.StatusCode, apiErr.Error, apiErr.Details)
	}
	return fmt.Errorf("API %d: %s", resp.StatusCode, string(body))
}
