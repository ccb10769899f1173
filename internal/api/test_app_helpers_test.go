package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/datepick/internal/db"
	"github.com/terraincognita07/datepick/internal/i18n"
	"github.com/terraincognita07/datepick/internal/services"
)

const testSecretKey = "test-secret-key-with-at-least-32-bytes!!"

var apiTestNow = time.Date(2026, time.October, 21, 9, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "datepick-api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	manager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(database, testSecretKey, manager, services.PickerDefaults{}, false)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.WithClock(func() time.Time { return apiTestNow })

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, token string, body any, headers ...string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	for index := 0; index+1 < len(headers); index += 2 {
		request.Header.Set(headers[index], headers[index+1])
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return response
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()
	defer response.Body.Close()

	var payload T
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body %q: %v", strings.TrimSpace(string(raw)), err)
	}
	return payload
}

type createPickerResponse struct {
	Token  string         `json:"token"`
	Picker pickerViewJSON `json:"picker"`
}

func mustCreatePicker(t *testing.T, app *fiber.App, body map[string]any) createPickerResponse {
	t.Helper()

	response := doRequest(t, app, http.MethodPost, "/api/pickers", "", body)
	if response.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", response.StatusCode, readAPIError(t, response))
	}
	created := decodeJSON[createPickerResponse](t, response)
	if created.Token == "" || created.Picker.ID == "" {
		t.Fatalf("expected token and picker id, got %+v", created)
	}
	return created
}

func mustPickerView(t *testing.T, response *http.Response) pickerViewJSON {
	t.Helper()
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", response.StatusCode, readAPIError(t, response))
	}
	return decodeJSON[pickerViewJSON](t, response)
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	payload := decodeJSON[map[string]any](t, response)
	message, _ := payload["error"].(string)
	return message
}

func findCell(t *testing.T, view pickerViewJSON, day int) pickerCellJSON {
	t.Helper()
	for _, week := range view.Weeks {
		for _, cell := range week {
			if !cell.Empty && cell.Day == day {
				return cell
			}
		}
	}
	t.Fatalf("day %d not found in %s", day, view.MonthLabel)
	return pickerCellJSON{}
}
