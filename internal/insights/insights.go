// Package insights asks an LLM for a narrative health summary of the group.
package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/chitfund/internal/book"
	"github.com/mmynk/chitfund/internal/calculator"
	"github.com/mmynk/chitfund/internal/metrics"
	"github.com/mmynk/chitfund/internal/models"
)

// FallbackMessage is shown when the advisor cannot be reached.
const FallbackMessage = "Error connecting to AI advisor. Please check your network or try again later."

// EmptyMessage is shown when the advisor answers with no text.
const EmptyMessage = "Unable to generate insights at this time."

const recentRecords = 5

// Summarizer turns a prompt into prose.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Advisor builds the group snapshot prompt and calls a Summarizer.
type Advisor struct {
	summarizer Summarizer
	timeout    time.Duration
}

// NewAdvisor returns an Advisor. A nil summarizer makes every call degrade to
// FallbackMessage.
func NewAdvisor(s Summarizer, timeout time.Duration) *Advisor {
	return &Advisor{summarizer: s, timeout: timeout}
}

// Insights returns the advisor's summary of data. On failure it returns
// FallbackMessage together with an error wrapping book.ErrExternalService.
func (a *Advisor) Insights(ctx context.Context, data *models.GroupData) (string, error) {
	if a.summarizer == nil {
		metrics.InsightRequests.WithLabelValues("disabled").Inc()
		return FallbackMessage, fmt.Errorf("%w: advisor not configured", book.ErrExternalService)
	}

	prompt, err := Prompt(data)
	if err != nil {
		return FallbackMessage, err
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	text, err := a.summarizer.Summarize(ctx, prompt)
	if err != nil {
		result := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			result = "timeout"
		}
		metrics.InsightRequests.WithLabelValues(result).Inc()
		slog.Error("AI advisor failed", "error", err)
		return FallbackMessage, fmt.Errorf("%w: %v", book.ErrExternalService, err)
	}

	metrics.InsightRequests.WithLabelValues("ok").Inc()
	if strings.TrimSpace(text) == "" {
		return EmptyMessage, nil
	}
	return text, nil
}

// Prompt renders the group snapshot sent to the summarizer.
func Prompt(data *models.GroupData) (string, error) {
	totals := calculator.SumRecords(data.Records)

	recent := data.Records
	if len(recent) > recentRecords {
		recent = recent[len(recent)-recentRecords:]
	}
	recentJSON, err := json.Marshal(recent)
	if err != nil {
		return "", fmt.Errorf("failed to encode recent payments: %w", err)
	}

	withLoans := 0
	for _, m := range data.Members {
		if m.HasActiveLoan() {
			withLoans++
		}
	}

	var b strings.Builder
	b.WriteString("Analyze this micro-finance group data and provide a concise professional summary (max 300 words).\n")
	fmt.Fprintf(&b, "Group Name: %s\n", data.Settings.Name)
	fmt.Fprintf(&b, "Monthly Savings Target: %s\n", data.Settings.MonthlySavingsAmount)
	fmt.Fprintf(&b, "Total Members: %d\n", len(data.Members))
	fmt.Fprintf(&b, "Total Accumulated Savings: %s\n", totals.Savings)
	fmt.Fprintf(&b, "Total Interest Earned: %s\n", totals.Interest)
	fmt.Fprintf(&b, "Current Active Loan Burden: %s\n", calculator.ActiveLoanBurden(data))
	b.WriteString("\nData Context:\n")
	fmt.Fprintf(&b, "- Recent payments: %s\n", recentJSON)
	fmt.Fprintf(&b, "- Members with loans: %d\n", withLoans)
	b.WriteString("\nPlease provide:\n")
	b.WriteString("1. Financial Health Score (1-10)\n")
	b.WriteString("2. Key Insights (e.g., collection efficiency, loan risk)\n")
	b.WriteString("3. Actionable Recommendations for the group administrator.\n")
	return b.String(), nil
}
