package controller_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadCSV(t *testing.T, ta *testAPI, content string) map[string]interface{} {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "customers.csv")
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, "/api/customers/import", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func TestImportCustomersSkipsDuplicates(t *testing.T) {
	ta := newTestAPI(t)
	ta.addCustomer(t, "John Smith", "+1-555-0101")

	body := uploadCSV(t, ta, strings.Join([]string{
		"name,phone,business_name",
		"John Smith,+1-555-0101,Smith's Corner Store",
		"Maria Garcia,+1-555-0102,Garcia Family Restaurant",
		"No Phone,,Phoneless Shop",
	}, "\n"))

	assert.EqualValues(t, 1, body["imported"])
	assert.EqualValues(t, 2, body["skipped"])

	_, stats := ta.request(t, http.MethodGet, "/api/stats", nil)
	assert.EqualValues(t, 2, stats["total_customers"])
}

func TestExportCustomersRoundTrip(t *testing.T) {
	ta := newTestAPI(t)
	ta.addCustomer(t, "John Smith", "+1-555-0101")
	ta.addCustomer(t, "Maria Garcia", "+1-555-0102")

	req, err := http.NewRequest(http.MethodGet, "/api/customers/export", nil)
	require.NoError(t, err)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	records, err := csv.NewReader(resp.Body).ReadAll()
	resp.Body.Close()
	require.NoError(t, err)
	require.Len(t, records, 3) // header plus two rows
	assert.Equal(t, "name", records[0][0])
	assert.Equal(t, "+1-555-0101", records[1][1])
	assert.Equal(t, "new", records[1][6])
}

func TestExportCustomersRejectsUnknownStatus(t *testing.T) {
	ta := newTestAPI(t)

	req, err := http.NewRequest(http.MethodGet, "/api/customers/export?status=garbage", nil)
	require.NoError(t, err)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
