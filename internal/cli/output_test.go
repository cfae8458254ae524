package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/cloudcost/pkg/client"
)

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	table := &Table{headers: []string{"ID", "NAME"}, writer: &buf}
	table.AddRow("1", "prod")
	table.AddRow("22", "staging")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID  NAME", lines[0])
	assert.Equal(t, "--  ----", lines[1])
	assert.Equal(t, "1   prod", lines[2])
	assert.Equal(t, "22  staging", lines[3])
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{12.5, "$12.50"},
		{999.999, "$1,000.00"},
		{1234567.891, "$1,234,567.89"},
		{-4200, "-$4,200.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(tt.in), "formatMoney(%v)", tt.in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "long na...", truncate("long name here", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "[H] HIGH", formatPriority("HIGH"))
	assert.Equal(t, "[L] LOW", formatPriority("low"))
	assert.Equal(t, "[+] IMPLEMENTED", formatStatus("IMPLEMENTED"))
	assert.Equal(t, "[*] PENDING", formatStatus("PENDING"))
	assert.Equal(t, "[-] ERROR", formatStatus("ERROR"))
	assert.Equal(t, "SOMETHING", formatStatus("SOMETHING"))

	assert.Equal(t, "[!] OVER", budgetState(true, true))
	assert.Equal(t, "[~] NEAR LIMIT", budgetState(false, true))
	assert.Equal(t, "[+] OK", budgetState(false, false))
}

func TestParseKeyValues(t *testing.T) {
	creds, err := parseKeyValues([]string{"accessKeyId=AKIA", "secretAccessKey=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"accessKeyId": "AKIA", "secretAccessKey": "a=b"}, creds)

	creds, err = parseKeyValues(nil)
	require.NoError(t, err)
	assert.Nil(t, creds)

	_, err = parseKeyValues([]string{"missing-separator"})
	assert.Error(t, err)
	_, err = parseKeyValues([]string{"=value"})
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := writeReport(dir, &client.Report{
		Filename: "../costs-2026-10-19.csv",
		Content:  []byte("date,cost\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "costs-2026-10-19.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,cost\n", string(data))

	_, err = writeReport(dir, &client.Report{Content: []byte("x")})
	assert.Error(t, err)
}

func TestConfigHelpers(t *testing.T) {
	assert.True(t, isOutputFormat("yaml"))
	assert.False(t, isOutputFormat("xml"))
	assert.True(t, isSecretKey("auth.token"))
	assert.False(t, isSecretKey("auth.email"))
}
