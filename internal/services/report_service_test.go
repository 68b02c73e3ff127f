package services

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trunkreport/internal/files"
	"trunkreport/internal/pipeline"
)

const sampleCSV = `Customer Relationships,Trunk Group,Country Destination,Vendor,Revenue,Cost,Profit,Attempts
Carrier X,A,US,OPS-1,10,5,5,100
Carrier X,A,US,Acme,20,8,12,200
Carrier Y,B,UK,Beta,30,10,20,50
`

func newTestService(t *testing.T) (*ReportService, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewReportService(pipeline.DefaultConfig(), files.NewManager(dir, nil), nil)
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return svc, dir
}

func TestProcessCSVUpload(t *testing.T) {
	svc, dir := newTestService(t)

	result, err := svc.Process(context.Background(), "July Export.csv", strings.NewReader(sampleCSV), FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "20260831_120000_July_Export.csv", result.Artifact)
	assert.Equal(t, 3, result.Summary.InputRows)
	assert.Equal(t, 1, result.Summary.AdjustedRows)
	assert.Equal(t, 2, result.Summary.Groups)

	data, err := os.ReadFile(filepath.Join(dir, result.Artifact))
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\xef\xbb\xbf")))
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	// header + 2 data + totals + 5 blanks + 1 data + totals
	require.Len(t, rows, 11)
	assert.Equal(t, []string{"", "A", "", "", "30.00", "8.00", "12.00"}, rows[3])
	assert.Equal(t, []string{"", "", "", "", "", "", ""}, rows[4])
	assert.Equal(t, []string{"", "B", "", "", "30.00", "10.00", "20.00"}, rows[10])
}

func TestProcessXLSXOutput(t *testing.T) {
	svc, dir := newTestService(t)

	result, err := svc.Process(context.Background(), "export.csv", strings.NewReader(sampleCSV), FormatXLSX)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.Artifact, ".xlsx"))

	_, err = os.Stat(filepath.Join(dir, result.Artifact))
	assert.NoError(t, err)
}

func TestProcessRejectsUnsupportedExtension(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Process(context.Background(), "export.pdf", strings.NewReader("x"), FormatCSV)
	require.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestProcessSchemaErrorPropagates(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Process(context.Background(), "export.csv",
		strings.NewReader("Vendor,Revenue\nAcme,1\n"), FormatCSV)
	require.Error(t, err)

	var schemaErr *pipeline.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestProcessEmptyAfterFilterWritesHeaderOnly(t *testing.T) {
	svc, dir := newTestService(t)

	input := "Customer Relationships,Trunk Group,Country Destination,Vendor,Revenue,Cost,Profit\nCarrier X,A,US,,1,1,0\n"
	result, err := svc.Process(context.Background(), "export.csv", strings.NewReader(input), FormatCSV)
	require.NoError(t, err)
	assert.Zero(t, result.Summary.Groups)

	data, err := os.ReadFile(filepath.Join(dir, result.Artifact))
	require.NoError(t, err)
	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	assert.Equal(t, 1, strings.Count(strings.TrimRight(content, "\r\n"), "\n")+1)
}

func TestListNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Process(context.Background(), "one.csv", strings.NewReader(sampleCSV), FormatCSV)
	require.NoError(t, err)

	artifacts, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "20260831_120000_one.csv", artifacts[0].Name)
}

func TestDownload(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Process(context.Background(), "one.csv", strings.NewReader(sampleCSV), FormatCSV)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/reports/download/"+result.Artifact, nil)
	w := httptest.NewRecorder()
	require.NoError(t, svc.Download(context.Background(), w, r, result.Artifact))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), result.Artifact)
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestDownloadMissingFile(t *testing.T) {
	svc, _ := newTestService(t)

	r := httptest.NewRequest(http.MethodGet, "/api/reports/download/nope.csv", nil)
	w := httptest.NewRecorder()
	err := svc.Download(context.Background(), w, r, "nope.csv")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDownloadRejectsTraversal(t *testing.T) {
	svc, _ := newTestService(t)

	r := httptest.NewRequest(http.MethodGet, "/api/reports/download/x", nil)
	w := httptest.NewRecorder()
	err := svc.Download(context.Background(), w, r, "../secret.csv")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestProcessReturnsPreview(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Process(context.Background(), "export.csv", strings.NewReader(sampleCSV), FormatCSV)
	require.NoError(t, err)

	require.NotEmpty(t, result.Preview)
	assert.Equal(t, pipeline.RequiredColumns(), result.Preview[0])
	// header + all 10 output rows fit under the preview cap
	assert.Len(t, result.Preview, 11)
	assert.Equal(t, []string{"", "A", "", "", "30.00", "8.00", "12.00"}, result.Preview[3])
}

func TestDeleteArtifact(t *testing.T) {
	svc, dir := newTestService(t)

	result, err := svc.Process(context.Background(), "export.csv", strings.NewReader(sampleCSV), FormatCSV)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), result.Artifact))
	_, err = os.Stat(filepath.Join(dir, result.Artifact))
	assert.True(t, os.IsNotExist(err))

	artifacts, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestDeleteMissingArtifact(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), "never-existed.csv")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDeleteRejectsTraversal(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), "../outside.csv")
	assert.ErrorIs(t, err, ErrFileNotFound)
}
