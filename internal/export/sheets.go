package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"contas/internal/log"
)

// SheetsExporter appends exported rows to a Google Sheets spreadsheet.
type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
}

// NewSheetsExporter creates an exporter for the given spreadsheet and
// sheet. Credentials come from GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_APPLICATION_CREDENTIALS, falling
// back to application default credentials.
func NewSheetsExporter(ctx context.Context, spreadsheetID, sheetName string, logger *log.Logger) (*SheetsExporter, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if sheetName == "" {
		sheetName = "Ledger"
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger.WithComponent(log.ComponentExport),
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		b, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	}

	if credentialsJSON != nil {
		return gsheet.NewService(ctx,
			goption.WithCredentialsJSON(credentialsJSON),
			goption.WithScopes(gsheet.SpreadsheetsScope))
	}
	return gsheet.NewService(ctx, goption.WithScopes(gsheet.SpreadsheetsScope))
}

// Append appends a header row plus one row per record to the sheet.
// Appending zero rows does nothing.
func (e *SheetsExporter) Append(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	headers := Headers(rows)

	values := make([][]any, 0, len(rows)+1)
	headerCells := make([]any, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	values = append(values, headerCells)

	for _, row := range rows {
		byKey := make(map[string]string, len(row))
		for _, f := range row {
			byKey[f.Key] = f.Value
		}
		cells := make([]any, len(headers))
		for i, h := range headers {
			cells[i] = byKey[h]
		}
		values = append(values, cells)
	}

	_, err := e.svc.Spreadsheets.Values.Append(
		e.spreadsheetID,
		e.sheetName,
		&gsheet.ValueRange{Values: values},
	).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", e.sheetName, err)
	}

	e.logger.Info("exported rows to sheet",
		log.FieldOperation, log.OpExport,
		log.FieldRowCount, len(rows),
		log.FieldDestination, e.sheetName)
	return nil
}
