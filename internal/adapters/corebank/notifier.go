// Package corebank posts fully approved transactions to the core banking
// system for execution.
package corebank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	portssvc "github.com/bankops-oss/maker_checker_app/internal/core/ports/services"
)

// Notifier delivers approved transactions over HTTP.
type Notifier struct {
	baseURL string
	client  *http.Client
}

// NewNotifier creates a notifier targeting the core banking base URL.
func NewNotifier(baseURL string) *Notifier {
	return &Notifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

var _ portssvc.PostApprovalNotifier = (*Notifier)(nil)

// NotifyApproved posts the transaction document to the execution endpoint.
func (n *Notifier) NotifyApproved(ctx context.Context, txn *domain.Transaction) error {
	body, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction %s: %w", txn.TransactionID, err)
	}

	url := n.baseURL + "/api/v1/executions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build core banking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach core banking system: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("core banking system returned %s for transaction %s", resp.Status, txn.TransactionID)
	}
	return nil
}

// NoopNotifier discards notifications; used when no core banking URL is configured.
type NoopNotifier struct{}

var _ portssvc.PostApprovalNotifier = (*NoopNotifier)(nil)

func (NoopNotifier) NotifyApproved(ctx context.Context, txn *domain.Transaction) error {
	return nil
}
