package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/hirematch/recruitment/application"
	"github.com/Abraxas-365/hirematch/recruitment/savedsearch"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintReportDryRun(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &savedsearch.CheckReport{
		DryRun: true,
		Results: []savedsearch.CheckResult{
			{SearchName: "Go devs", Recruiter: "rita", NewMatches: 2},
			{SearchName: "Rustaceans", Recruiter: "sam", NewMatches: 1},
		},
		Total: 3,
	})

	assert.Equal(t,
		"Would notify rita about 2 new matches for search 'Go devs'\n"+
			"Would notify sam about 1 new matches for search 'Rustaceans'\n"+
			"DRY RUN: Would send 3 notifications total\n",
		buf.String())
}

func TestPrintReportRealRun(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &savedsearch.CheckReport{
		Results: []savedsearch.CheckResult{
			{SearchName: "Go devs", Recruiter: "rita", NewMatches: 2, Delivered: true},
			{SearchName: "Rustaceans", Recruiter: "sam", NewMatches: 1, Error: "queue unavailable"},
		},
		Total:    2,
		Failures: 1,
	})

	assert.Equal(t,
		"Notified rita about 2 new matches for search 'Go devs'\n"+
			"Failed to notify sam about 1 new matches for search 'Rustaceans': queue unavailable\n"+
			"Sent 2 notifications total\n",
		buf.String())
}

func TestPrintReportNothingToSend(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &savedsearch.CheckReport{})
	assert.Equal(t, "Sent 0 notifications total\n", buf.String())
}

func errorApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: globalErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error { return err })
	return app
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestGlobalErrorHandler(t *testing.T) {
	t.Run("registered error keeps its status and code", func(t *testing.T) {
		resp, err := errorApp(application.ErrApplicationNotFound()).Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "APPLICATION_NOT_FOUND", decode(t, resp)["code"])
	})

	t.Run("fiber error", func(t *testing.T) {
		resp, err := errorApp(fiber.ErrMethodNotAllowed).Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("unknown error is hidden", func(t *testing.T) {
		resp, err := errorApp(errors.New("pq: connection refused")).Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body := decode(t, resp)
		assert.Equal(t, "INTERNAL_ERROR", body["code"])
		assert.NotContains(t, body["message"], "pq")
	})
}
