package rask

import (
	"context"
	"net/http"
)

// CreditItem is the allowance and usage of one credit kind.
type CreditItem struct {
	Total int `json:"total"`
	Used  int `json:"used"`
}

// Remaining returns the unused part of the allowance.
func (c CreditItem) Remaining() int {
	return c.Total - c.Used
}

// Credits lists the current user's credits.
type Credits struct {
	Minutes            CreditItem `json:"minutes"`
	Video              CreditItem `json:"video"`
	LipsyncFreeMinutes CreditItem `json:"lipsync_free_minutes"`
}

// GetCredits returns the credits of the current user.
func (c *Client) GetCredits(ctx context.Context) (*Credits, error) {
	return call[Credits](ctx, c, request{method: http.MethodGet, path: "/v2/credits"})
}
