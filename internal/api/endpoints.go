// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// =============================================================================
// CREDENTIAL EXCHANGE
// =============================================================================

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Access string `json:"access"`
}

// Login exchanges credentials for a bearer token. The token is returned but
// not installed; the session store decides where it is persisted before
// installing it.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "/token/", tokenRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if apiErr.Detail != "" {
				return "", fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.Detail)
			}
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	var tr tokenResponse
	if err := json.Unmarshal(data, &tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.Access == "" {
		return "", ErrInvalidCredentials
	}
	return tr.Access, nil
}

// =============================================================================
// CURRENT USER
// =============================================================================

// Me fetches the authenticated operator profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	data, err := c.do(ctx, http.MethodGet, "/me/", nil)
	if err != nil {
		return nil, err
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &u, nil
}

// =============================================================================
// PASSWORD CHANGE
// =============================================================================

type passwordChangeRequest struct {
	CurrentPassword string `json:"senha_atual"`
	NewPassword     string `json:"nova_senha"`
}

// ChangePassword sets a new password for the authenticated operator,
// clearing the forced-change flag server side.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	_, err := c.do(ctx, http.MethodPost, "/me/trocar-senha/", passwordChangeRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
	return err
}

// =============================================================================
// PRIVILEGE CATALOG SYNC
// =============================================================================

// PrivilegeEntry is one route of the declarative menu catalog, pushed to
// the server privilege registry so fine-grained assignments can be edited
// against the same table the client navigates by.
type PrivilegeEntry struct {
	Path   string `json:"rota"`
	Title  string `json:"titulo"`
	Module string `json:"modulo"`
}

type privilegeSyncRequest struct {
	Entries []PrivilegeEntry `json:"funcionalidades"`
}

// SyncPrivileges pushes the menu catalog to the server privilege registry.
// Callers treat this as best effort: it is fired without blocking and
// failures are ignored.
func (c *Client) SyncPrivileges(ctx context.Context, entries []PrivilegeEntry) error {
	_, err := c.do(ctx, http.MethodPost, "/configuracoes/funcionalidades/sincronizar/", privilegeSyncRequest{
		Entries: entries,
	})
	return err
}

// =============================================================================
// GENERIC RESOURCE ACCESS
// =============================================================================

// Fetch performs a GET against a resource endpoint and returns the decoded
// JSON rows. Page views consume their backing data exclusively through this
// contract.
func (c *Client) Fetch(ctx context.Context, endpoint string) ([]map[string]any, error) {
	data, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	// Endpoints answer either a bare array or a DRF page {results: [...]}.
	var page struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(data, &page); err == nil && page.Results != nil {
		return page.Results, nil
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode resource rows: %w", err)
	}
	return rows, nil
}
