package main

import (
	"bytes"
	"testing"

	"spendwise/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintReports(t *testing.T) {
	var buf bytes.Buffer
	err := printReports(&buf, []dto.ReportResponse{
		{Month: "2024-03", TotalSpent: "15230.5", TopCategory: "Rent", OverbudgetCategories: []string{"Food", "Shopping"}},
		{Month: "2024-02", TotalSpent: "0", TopCategory: "No expenses", OverbudgetCategories: []string{}},
	})
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "TOP CATEGORY")
	assert.Contains(t, string(lines[1]), "Food, Shopping")
	assert.Contains(t, string(lines[2]), "No expenses")
	assert.True(t, bytes.HasSuffix(lines[2], []byte("-")))
}
