package service_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eest6/calendar-api/internal/config"
	"github.com/eest6/calendar-api/internal/domain"
	"github.com/eest6/calendar-api/internal/repository"
	"github.com/eest6/calendar-api/internal/service"
	"github.com/eest6/calendar-api/internal/sheets"
	"github.com/eest6/calendar-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// sheetCSV maps sheet tab names to the CSV body a fake spreadsheet serves.
type sheetCSV map[string]string

func newSheetServer(t *testing.T, csv sheetCSV) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := csv[r.URL.Query().Get("sheet")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, body)
	}))
}

func newTestEventService(t *testing.T, serverURL string) *service.EventService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	client := sheets.NewClient(&config.SheetsConfig{
		SpreadsheetID: "test",
		BaseURL:       serverURL,
		Timeout:       5,
	}, zap.NewNop())

	return service.NewEventService(
		client,
		repository.NewFetchLogRepository(db),
		&config.NewsConfig{FreshnessDays: 7},
		zap.NewNop(),
	)
}

const header = `"Recibido","Fecha","Descripción","Asunto","Link"` + "\n"

func row(received, kindDate, description, subject, link string) string {
	return fmt.Sprintf("%q,%q,%q,%q,%q\n", received, kindDate, description, subject, link)
}

func liveSheets() sheetCSV {
	return sheetCSV{
		"Entregas": header +
			row("01/03/2025", "15/03/2025", "Primera entrega", "TP 1", "") +
			row("02/03/2025", "20/03/2025", "Segunda entrega", "TP 2", ""),
		"Convocatorias": header +
			row("01/03/2025", "10/03/2025", "", "Becas 2025", ""),
		"Solicitudes": header, // header only, no data
	}
}

func emptySheets() sheetCSV {
	return sheetCSV{"Entregas": "", "Convocatorias": "", "Solicitudes": ""}
}

func TestEventService_Refresh_Live(t *testing.T) {
	server := newSheetServer(t, liveSheets())
	defer server.Close()

	svc := newTestEventService(t, server.URL)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx, domain.TriggerManual))

	resp, err := svc.Events(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceLive, resp.Source)
	require.Len(t, resp.Events, 3)

	// Deliveries first, then calls; IDs numbered per sheet
	assert.Equal(t, "delivery-1", resp.Events[0].ID)
	assert.Equal(t, "delivery-2", resp.Events[1].ID)
	assert.Equal(t, "call-1", resp.Events[2].ID)
	assert.Equal(t, "TP 1", resp.Events[0].Title)
	assert.Equal(t, domain.KindCall, resp.Events[2].Type)
}

func TestEventService_Refresh_AllEmptyServesPlaceholders(t *testing.T) {
	server := newSheetServer(t, emptySheets())
	defer server.Close()

	svc := newTestEventService(t, server.URL)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx, domain.TriggerStartup))

	resp, err := svc.Events(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SourcePlaceholder, resp.Source)
	assert.Len(t, resp.Events, len(domain.PlaceholderEvents()))
}

func TestEventService_Events_LazyFirstRefresh(t *testing.T) {
	server := newSheetServer(t, liveSheets())
	defer server.Close()

	svc := newTestEventService(t, server.URL)

	// No explicit Refresh; the first read triggers one
	resp, err := svc.Events(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SourceLive, resp.Source)
	assert.Len(t, resp.Events, 3)
}

func TestEventService_ToggleCompleted(t *testing.T) {
	server := newSheetServer(t, liveSheets())
	defer server.Close()

	svc := newTestEventService(t, server.URL)
	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx, domain.TriggerManual))

	toggled, err := svc.ToggleCompleted("delivery-1")
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = svc.ToggleCompleted("delivery-1")
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	_, err = svc.ToggleCompleted("delivery-99")
	assert.ErrorIs(t, err, service.ErrEventNotFound)
}

func TestEventService_Refresh_ResetsCompletedFlags(t *testing.T) {
	server := newSheetServer(t, liveSheets())
	defer server.Close()

	svc := newTestEventService(t, server.URL)
	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx, domain.TriggerManual))

	_, err := svc.ToggleCompleted("delivery-2")
	require.NoError(t, err)

	// The flag lives on the snapshot only; a rebuild starts clean
	require.NoError(t, svc.Refresh(ctx, domain.TriggerScheduled))

	resp, err := svc.Events(ctx)
	require.NoError(t, err)
	for _, e := range resp.Events {
		assert.False(t, e.Completed, "event %s", e.ID)
	}
}

func TestEventService_News(t *testing.T) {
	now := time.Now()
	recent := now.AddDate(0, 0, -2).Format("02/01/2006")
	old := now.AddDate(0, 0, -30).Format("02/01/2006")

	server := newSheetServer(t, sheetCSV{
		"Entregas": header +
			row(old, old, "Entrega vieja", "Vieja", "") +
			row(recent, recent, "Entrega reciente", "Reciente", ""),
		"Convocatorias": header,
		"Solicitudes":   header,
	})
	defer server.Close()

	svc := newTestEventService(t, server.URL)
	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx, domain.TriggerManual))

	items, err := svc.News(ctx, now)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Newest first
	assert.Equal(t, "Reciente", items[0].Title)
	assert.True(t, items[0].IsNew)
	assert.Equal(t, "Vieja", items[1].Title)
	assert.False(t, items[1].IsNew)
}

func TestEventService_Diagnostics(t *testing.T) {
	server := newSheetServer(t, liveSheets())
	defer server.Close()

	svc := newTestEventService(t, server.URL)

	diags, err := svc.Diagnostics(context.Background())
	require.NoError(t, err)
	require.Len(t, diags, 3)

	assert.Equal(t, "Entregas", diags[0].Sheet)
	assert.Equal(t, 3, diags[0].RowCount)
	assert.False(t, diags[0].IsEmpty)
	assert.Equal(t, "Asunto", diags[0].Header[3])
	assert.Len(t, diags[0].SampleRows, 2)

	// Header-only sheet counts as empty
	assert.Equal(t, "Solicitudes", diags[2].Sheet)
	assert.True(t, diags[2].IsEmpty)
	assert.Equal(t, 1, diags[2].RowCount)
}

func TestEventService_RecentRefreshes(t *testing.T) {
	server := newSheetServer(t, liveSheets())
	defer server.Close()

	svc := newTestEventService(t, server.URL)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx, domain.TriggerStartup))
	require.NoError(t, svc.Refresh(ctx, domain.TriggerManual))

	logs, err := svc.RecentRefreshes(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	// Newest first
	assert.Equal(t, string(domain.TriggerManual), logs[0].Trigger)
	assert.Equal(t, string(domain.TriggerStartup), logs[1].Trigger)
	assert.Equal(t, domain.SourceLive, logs[0].Source)
	assert.Equal(t, 2, logs[0].DeliveryRows)
	assert.Equal(t, 1, logs[0].CallRows)
	assert.Equal(t, 0, logs[0].RequestRows)
	assert.Equal(t, 3, logs[0].TotalEvents)
}

func TestEventService_RecentRefreshes_PlaceholderRecorded(t *testing.T) {
	server := newSheetServer(t, emptySheets())
	defer server.Close()

	svc := newTestEventService(t, server.URL)
	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx, domain.TriggerScheduled))

	logs, err := svc.RecentRefreshes(ctx, 5)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.SourcePlaceholder, logs[0].Source)
	assert.Equal(t, 0, logs[0].DeliveryRows)
	assert.Equal(t, len(domain.PlaceholderEvents()), logs[0].TotalEvents)
}
