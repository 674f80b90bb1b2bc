package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ERC-20 function selectors
const (
	selectorBalanceOf = "0x70a08231"
	selectorDecimals  = "0x313ce567"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidAddress reports whether s looks like an EVM address
func ValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// Client queries a fungible token contract over JSON-RPC
type Client struct {
	rpcURL     string
	token      string
	httpClient *http.Client
}

// NewClient creates a chain query client for the given RPC endpoint and
// token contract.
func NewClient(rpcURL, tokenAddress string) *Client {
	return &Client{
		rpcURL: rpcURL,
		token:  tokenAddress,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// call performs a single JSON-RPC request and returns the raw result
func (c *Client) call(ctx context.Context, method string, params []interface{}) (gjson.Result, error) {
	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return gjson.Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("rpc request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return gjson.Result{}, fmt.Errorf("rpc error: status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, err
	}

	if rpcErr := gjson.GetBytes(raw, "error"); rpcErr.Exists() {
		return gjson.Result{}, fmt.Errorf("rpc error %d: %s",
			rpcErr.Get("code").Int(), rpcErr.Get("message").String())
	}

	return gjson.GetBytes(raw, "result"), nil
}

// ethCall performs eth_call against the token contract with the given data
func (c *Client) ethCall(ctx context.Context, data string) (*big.Int, error) {
	result, err := c.call(ctx, "eth_call", []interface{}{
		map[string]interface{}{
			"to":   c.token,
			"data": data,
		},
		"latest",
	})
	if err != nil {
		return nil, err
	}

	hexValue := strings.TrimPrefix(result.String(), "0x")
	if hexValue == "" {
		return big.NewInt(0), nil
	}

	value, ok := new(big.Int).SetString(hexValue, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex result: %s", result.String())
	}
	return value, nil
}

// BalanceOf returns the raw token balance for the given address
func (c *Client) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	if !ValidAddress(address) {
		return nil, fmt.Errorf("invalid address: %s", address)
	}
	data := selectorBalanceOf + padAddress(address)
	return c.ethCall(ctx, data)
}

// Decimals returns the token's declared decimal precision
func (c *Client) Decimals(ctx context.Context) (uint8, error) {
	value, err := c.ethCall(ctx, selectorDecimals)
	if err != nil {
		return 0, err
	}
	return uint8(value.Uint64()), nil
}

// padAddress left-pads an address to the 32-byte ABI word
func padAddress(address string) string {
	addr := strings.ToLower(strings.TrimPrefix(address, "0x"))
	return strings.Repeat("0", 64-len(addr)) + addr
}

// Normalize converts a raw balance into token units using the declared
// decimal precision.
func Normalize(raw *big.Int, decimals uint8) float64 {
	if raw == nil {
		return 0
	}
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value, _ := new(big.Float).Quo(new(big.Float).SetInt(raw), divisor).Float64()
	return value
}
