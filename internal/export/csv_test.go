package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contas/internal/core"
)

func TestHeadersUnionFirstSeenOrder(t *testing.T) {
	rows := []Row{
		{{"id", "1"}, {"amount", "10"}},
		{{"id", "2"}, {"transfer_id", "7"}, {"amount", "20"}},
		{{"note", "x"}},
	}
	assert.Equal(t, []string{"id", "amount", "transfer_id", "note"}, Headers(rows))
}

func TestWriteCSVQuoting(t *testing.T) {
	rows := []Row{
		{{"name", `plain`}, {"note", "a,b"}},
		{{"name", `say "hi"`}, {"note", "line1\nline2"}},
	}
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, rows))

	want := "name,note\n" +
		`plain,"a,b"` + "\n" +
		`"say ""hi""","line1` + "\n" + `line2"`
	assert.Equal(t, want, sb.String())
}

func TestWriteCSVFillsMissingCells(t *testing.T) {
	rows := []Row{
		{{"id", "1"}},
		{{"id", "2"}, {"extra", "x"}},
	}
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, rows))
	assert.Equal(t, "id,extra\n1,\n2,x", sb.String())
}

func TestWriteCSVEmptyIsNoop(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, nil))
	assert.Empty(t, sb.String())
}

func TestTransactionRows(t *testing.T) {
	catID := int64(3)
	trID := int64(9)
	rows := TransactionRows([]core.Transaction{
		{
			ID:         1,
			AccountID:  2,
			CategoryID: &catID,
			Amount:     "12.50",
			OccurredAt: time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:           2,
			AccountID:    2,
			Amount:       "92.00",
			OccurredAt:   time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC),
			FromTransfer: true,
			TransferID:   &trID,
		},
	})
	require.Len(t, rows, 2)

	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, rows))
	lines := strings.Split(sb.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,account_id,category_id,amount,occurred_at,description,from_transfer,transfer_id", lines[0])
	assert.Equal(t, "1,2,3,12.50,2025-03-15T14:30:00Z,,false,", lines[1])
	assert.Equal(t, "2,2,,92.00,2025-03-16T09:00:00Z,,true,9", lines[2])
}
