package main

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/viper"

	"kukkaro/internal/client"
	"kukkaro/internal/summary"
)

const dateLayout = "2006-01-02"

// newAPIClient builds an API client from the resolved configuration.
func newAPIClient() *client.Client {
	baseURL := viper.GetString("api_url")
	log.Debugw("using API", "url", baseURL)
	return client.NewClient(baseURL, &http.Client{Timeout: viper.GetDuration("timeout")})
}

// parseID parses a positive numeric ID argument.
func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid ID %q", s)
	}
	return uint(id), nil
}

// parseDate parses YYYY-MM-DD as a UTC date. An empty string means today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

// parseMonth parses YYYY-MM. An empty string means the current month.
func parseMonth(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	m, err := time.Parse(summary.MonthFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return m, nil
}

func kindTitle(kind client.Kind) string {
	if kind == client.KindIncome {
		return "Income"
	}
	return "Expense"
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func categoryLabel(c *client.Category) string {
	if c == nil {
		return SubtleStyle.Render(summary.OtherCategoryName)
	}
	if c.Icon == "" {
		return c.Name
	}
	return c.Icon + " " + c.Name
}

// printEntries writes the merged list as a table.
func printEntries(out io.Writer, entries []summary.Entry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("ID"),
		HeaderStyle.Render("Date"),
		HeaderStyle.Render("Name"),
		HeaderStyle.Render("Category"),
		HeaderStyle.Render("Amount"))

	for _, e := range entries {
		amount := SuccessStyle.Render("+" + formatAmount(e.Amount))
		if e.Kind == client.KindExpense {
			amount = ErrorStyle.Render("-" + formatAmount(e.Amount))
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			e.ID, e.Date.Format(dateLayout), e.Name, categoryLabel(e.Category), amount)
	}
}

// printTransactions writes rows of one kind as a table.
func printTransactions(out io.Writer, kind client.Kind, rows []client.Transaction) {
	if kind == client.KindIncome {
		printEntries(out, summary.Merge(nil, rows))
		return
	}
	printEntries(out, summary.Merge(rows, nil))
}

func printCategories(out io.Writer, categories []client.Category) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("ID"),
		HeaderStyle.Render("Name"),
		HeaderStyle.Render("Type"),
		HeaderStyle.Render("Color"))

	for _, c := range categories {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s %s\n", c.ID, categoryLabel(&c), c.Type, swatch(c.Color), c.Color)
	}
}
