package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

const soapPayload = `{
	"products":  [{"product_id": 1, "product_name": "Soap", "price": 30.0}],
	"inventory": [{"product_id": 1, "current_stock": 120, "reorder_level": 40}],
	"sales": [
		{"product_id": 1, "sale_date": "2024-01-01", "quantity_sold": 5},
		{"product_id": 1, "sale_date": "2024-01-02", "quantity_sold": 15}
	]
}`

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "error")
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut, func() time.Time { return fixedNow })
	return code, out.String(), errOut.String()
}

func writePayload(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestRun_JSONDesdeArchivo(t *testing.T) {
	code, stdout, _ := runCLI(t, "--input-file", writePayload(t, soapPayload))
	require.Equal(t, exitOK, code)

	var report map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.JSONEq(t, `[{"product_id":"1","trend":"INCREASING"}]`, string(report["sales_trends"]))
}

func TestRun_TextoConDemo(t *testing.T) {
	code, stdout, _ := runCLI(t, "--output-format", "text")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Sales Stats:")
	assert.Contains(t, stdout, "Stock Alerts:")
	assert.Contains(t, stdout, "Trends:")
}

func TestRun_ErroresDeUso(t *testing.T) {
	code, _, _ := runCLI(t, "--output-format", "yaml")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI(t, "--desconocido")
	assert.Equal(t, exitUsage, code)
}

func TestRun_PayloadInvalido(t *testing.T) {
	code, _, stderr := runCLI(t, "--input-file", writePayload(t, `{"products": [{"product_id": 1}], "inventory": [], "sales": []}`))
	assert.Equal(t, exitDataError, code)
	assert.Contains(t, stderr, "product_name")

	code, _, _ = runCLI(t, "--input-file", filepath.Join(t.TempDir(), "no-existe.json"))
	assert.Equal(t, exitDataError, code)
}

func TestRun_PlotYPDF(t *testing.T) {
	dir := t.TempDir()
	chart := filepath.Join(dir, "chart.xlsx")
	report := filepath.Join(dir, "report.pdf")

	code, _, _ := runCLI(t, "--input-file", writePayload(t, soapPayload), "--plot", "--plot-file", chart, "--pdf-file", report)
	require.Equal(t, exitOK, code)
	assert.FileExists(t, chart)
	assert.FileExists(t, report)
}

func TestRun_PlotSinVentasNoFalla(t *testing.T) {
	chart := filepath.Join(t.TempDir(), "chart.xlsx")
	code, _, stderr := runCLI(t, "--input-file", writePayload(t, `{"products": [], "inventory": [], "sales": []}`), "--plot", "--plot-file", chart)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "No sales data to plot.")
	assert.NoFileExists(t, chart)
}

func TestRun_PlotSinBackend(t *testing.T) {
	t.Setenv("INSIGHTS_CHART_BACKEND", "none")
	code, stdout, _ := runCLI(t, "--input-file", writePayload(t, soapPayload), "--plot", "--plot-file", filepath.Join(t.TempDir(), "c.xlsx"))
	assert.Equal(t, exitUnavailable, code)
	assert.NotEmpty(t, stdout, "el reporte se imprime antes de fallar el gráfico")
}
