package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kukkaro/internal/logger"
	"kukkaro/internal/router"
	"kukkaro/internal/testutil"
	"kukkaro/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// startAPI serves the real router over an isolated in-memory database.
func startAPI(t *testing.T) string {
	t.Helper()

	db := testutil.SetupTestDB(t)
	server := httptest.NewServer(router.New(db, nil, router.Options{CORSOrigin: "*"}))
	t.Cleanup(func() {
		server.Close()
		testutil.TeardownTestDB(t, db)
	})
	return server.URL + "/api"
}

// run executes the CLI with args against apiURL and returns its output.
func run(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--api-url", apiURL}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func findCommand(cmd *cobra.Command, path ...string) *cobra.Command {
	found, _, err := cmd.Find(path)
	if err != nil {
		return nil
	}
	return found
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	for _, path := range [][]string{
		{"summary"},
		{"breakdown"},
		{"expenses", "add"},
		{"expenses", "edit"},
		{"expenses", "delete"},
		{"incomes", "add"},
		{"incomes", "list"},
		{"categories", "list"},
		{"categories", "add"},
		{"categories", "delete"},
		{"settings", "show"},
		{"settings", "set"},
	} {
		cmd := findCommand(root, path...)
		if assert.NotNil(t, cmd, "missing command %v", path) {
			assert.Equal(t, path[len(path)-1], cmd.Name())
		}
	}

	flag := root.PersistentFlags().Lookup("timeout")
	require.NotNil(t, flag)
	assert.Equal(t, "10s", flag.DefValue)
}

func TestParseHelpers(t *testing.T) {
	d, err := parseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = parseDate("29.02.2024")
	assert.Error(t, err)

	m, err := parseMonth("2025-12")
	require.NoError(t, err)
	assert.Equal(t, time.December, m.Month())

	_, err = parseMonth("2025-13")
	assert.Error(t, err)

	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, bad := range []string{"0", "-1", "abc"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestProgressBar(t *testing.T) {
	half := progressBar(50, 10, false)
	assert.Equal(t, 5, strings.Count(half, "█"))
	assert.Equal(t, 5, strings.Count(half, "░"))

	over := progressBar(150, 10, true)
	assert.Equal(t, 10, strings.Count(over, "█"))
	assert.Zero(t, strings.Count(over, "░"))
}

func TestBudgetWarningFiresOnce(t *testing.T) {
	api := startAPI(t)

	out, err := run(t, api, "categories", "add", "Food", "--type", "expense", "--color", "#ff8800", "--icon", "🍔")
	require.NoError(t, err)
	assert.Contains(t, out, "Added expense category #1")

	_, err = run(t, api, "settings", "set", "--enabled", "--amount", "100")
	require.NoError(t, err)

	out, err = run(t, api, "expenses", "add", "Groceries", "90", "--category", "1", "--date", "2025-03-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Added expense #1")
	assert.NotContains(t, out, "Budget just exceeded")

	out, err = run(t, api, "expenses", "add", "Dinner", "20,00", "--category", "1", "--date", "2025-03-12")
	require.NoError(t, err)
	assert.Contains(t, out, "Budget just exceeded")

	out, err = run(t, api, "expenses", "add", "Snack", "5", "--category", "1", "--date", "2025-03-13")
	require.NoError(t, err)
	assert.NotContains(t, out, "Budget just exceeded")

	out, err = run(t, api, "summary", "--month", "2025-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Summary for 2025-03")
	assert.Contains(t, out, "115.00")
	assert.Contains(t, out, "Over budget by 15.00")
	assert.Contains(t, out, "Dinner")

	out, err = run(t, api, "breakdown", "--month", "2025-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "100.0%")
}

func TestTransactionCommands(t *testing.T) {
	api := startAPI(t)

	_, err := run(t, api, "categories", "add", "Salary", "--type", "income", "--color", "#00aa00")
	require.NoError(t, err)

	out, err := run(t, api, "incomes", "add", "Pay", "1500,50", "--category", "1", "--date", "2025-04-01")
	require.NoError(t, err)
	assert.Contains(t, out, "1500.50")

	out, err = run(t, api, "incomes", "edit", "1", "--name", "April pay")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated income #1")

	out, err = run(t, api, "incomes", "list", "--month", "2025-04")
	require.NoError(t, err)
	assert.Contains(t, out, "April pay")
	assert.Contains(t, out, "2025-04-01")
	assert.Contains(t, out, "+1500.50")

	_, err = run(t, api, "incomes", "edit", "1")
	assert.ErrorContains(t, err, "nothing to change")

	_, err = run(t, api, "incomes", "add", "Bad", "0", "--category", "1")
	assert.ErrorContains(t, err, "failed to add income")
	assert.ErrorContains(t, err, "Amount must be a positive number")

	_, err = run(t, api, "categories", "delete", "1")
	assert.ErrorContains(t, err, "1 transactions found")

	out, err = run(t, api, "incomes", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted income #1")

	_, err = run(t, api, "incomes", "delete", "1")
	assert.ErrorContains(t, err, "Income not found")

	out, err = run(t, api, "categories", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted category #1")
}

func TestSettingsCommands(t *testing.T) {
	api := startAPI(t)

	out, err := run(t, api, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "disabled")
	assert.Contains(t, out, "0.00")

	_, err = run(t, api, "settings", "set")
	assert.ErrorContains(t, err, "nothing to change")

	out, err = run(t, api, "settings", "set", "--amount", "250,5")
	require.NoError(t, err)
	assert.Contains(t, out, "250.50")
}

func TestUnreachableAPI(t *testing.T) {
	_, err := run(t, "http://127.0.0.1:1/api", "--timeout", "1s", "summary")
	assert.ErrorContains(t, err, "could not load this month's data")
}
