package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-care-tracker/internal/router"

	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Kind    string            `json:"kind"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

type listData struct {
	Items []map[string]any `json:"items"`
	Count int              `json:"count"`
}

func TestHTTP_EndToEnd_CareFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := "owner-1"

	// Mascota -> rutina -> log done, el flujo completo
	petID := createPet(t, ts.URL, ownerID, map[string]any{"name": "Bruno"})

	routineID := createJSON(t, ts.URL, ownerID, "/pets/"+petID+"/routines", map[string]any{
		"name":      "Morning feeding",
		"frequency": "daily",
	})

	logID := createJSON(t, ts.URL, ownerID, "/pets/"+petID+"/care-logs", map[string]any{
		"routine_id": routineID,
		"status":     "done",
	})

	st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/care-logs", ownerID, nil)
	require.Equal(t, http.StatusOK, st, "list care logs: %s", body)
	require.Equal(t, 1, decodeList(t, body).Count)

	st, body = doReq(t, ts.URL, "DELETE", "/care-logs/"+logID, ownerID, nil)
	require.Equal(t, http.StatusOK, st, "delete care log: %s", body)

	st, body = doReq(t, ts.URL, "GET", "/pets/"+petID+"/care-logs", ownerID, nil)
	require.Equal(t, http.StatusOK, st)
	list := decodeList(t, body)
	require.Equal(t, 0, list.Count)
	require.Empty(t, list.Items)
}

func TestHTTP_OwnershipConflatesToNotFound(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := "owner-1"
	strangerID := "stranger-1"

	petID := createPet(t, ts.URL, ownerID, map[string]any{"name": "Milo"})
	routineID := createJSON(t, ts.URL, ownerID, "/pets/"+petID+"/routines", map[string]any{"name": "Brushing"})
	visitID := createJSON(t, ts.URL, ownerID, "/pets/"+petID+"/visits", map[string]any{"reason": "checkup"})
	logID := createJSON(t, ts.URL, ownerID, "/pets/"+petID+"/care-logs", map[string]any{"status": "done"})

	// Todo lo ajeno responde NOT_FOUND, indistinguible de inexistente
	cases := []struct {
		method, path string
		body         map[string]any
	}{
		{"GET", "/pets/" + petID, nil},
		{"PATCH", "/pets/" + petID, map[string]any{"name": "Hacked"}},
		{"DELETE", "/pets/" + petID, nil},
		{"POST", "/pets/" + petID + "/routines", map[string]any{"name": "x"}},
		{"PATCH", "/routines/" + routineID, map[string]any{"name": "x"}},
		{"POST", "/routines/" + routineID + "/archive", nil},
		{"GET", "/pets/" + petID + "/care-logs", nil},
		{"DELETE", "/care-logs/" + logID, nil},
		{"GET", "/pets/" + petID + "/visits", nil},
		{"PATCH", "/visits/" + visitID, map[string]any{"reason": "x"}},
		{"DELETE", "/visits/" + visitID, nil},
	}
	for _, tc := range cases {
		st, body := doReq(t, ts.URL, tc.method, tc.path, strangerID, tc.body)
		require.Equal(t, http.StatusNotFound, st, "%s %s: %s", tc.method, tc.path, body)
		require.Equal(t, "NOT_FOUND", decodeError(t, body))
	}

	// Y nada se mutó: el owner sigue viendo su mundo intacto
	st, body := doReq(t, ts.URL, "GET", "/pets/"+petID, ownerID, nil)
	require.Equal(t, http.StatusOK, st)
	var pet map[string]any
	decodeData(t, body, &pet)
	require.Equal(t, "Milo", pet["name"])

	st, body = doReq(t, ts.URL, "GET", "/pets/"+petID+"/care-logs", ownerID, nil)
	require.Equal(t, http.StatusOK, st)
	require.Equal(t, 1, decodeList(t, body).Count)
}

func TestHTTP_CareLogRoutineMismatchIsForbidden(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := "owner-1"

	petA := createPet(t, ts.URL, ownerID, map[string]any{"name": "Bruno"})
	petB := createPet(t, ts.URL, ownerID, map[string]any{"name": "Luna"})
	routineA := createJSON(t, ts.URL, ownerID, "/pets/"+petA+"/routines", map[string]any{"name": "Feeding"})

	// Rutina de A usada contra B => FORBIDDEN y no se escribe nada
	st, body := doReq(t, ts.URL, "POST", "/pets/"+petB+"/care-logs", ownerID, map[string]any{
		"routine_id": routineA,
		"status":     "done",
	})
	require.Equal(t, http.StatusForbidden, st, "mismatch: %s", body)
	require.Equal(t, "FORBIDDEN", decodeError(t, body))

	st, body = doReq(t, ts.URL, "GET", "/pets/"+petB+"/care-logs", ownerID, nil)
	require.Equal(t, http.StatusOK, st)
	require.Equal(t, 0, decodeList(t, body).Count)
}

func TestHTTP_PartialUpdateLeavesAbsentFields(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := "owner-1"
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":    "Bruno",
		"species": "dog",
		"breed":   "beagle",
		"color":   "brown",
	})

	patch := map[string]any{"color": "black"}

	// Aplicado dos veces da el mismo estado final (idempotencia del PATCH)
	for i := 0; i < 2; i++ {
		st, body := doReq(t, ts.URL, "PATCH", "/pets/"+petID, ownerID, patch)
		require.Equal(t, http.StatusOK, st, "patch #%d: %s", i+1, body)

		var env envelope
		require.NoError(t, json.Unmarshal(body, &env))
		require.True(t, env.Success)
		require.Empty(t, env.Data, "update must not echo the record")

		st, body = doReq(t, ts.URL, "GET", "/pets/"+petID, ownerID, nil)
		require.Equal(t, http.StatusOK, st)
		var pet map[string]any
		decodeData(t, body, &pet)
		require.Equal(t, "black", pet["color"])
		require.Equal(t, "Bruno", pet["name"])
		require.Equal(t, "dog", pet["species"])
		require.Equal(t, "beagle", pet["breed"])
	}
}

func TestHTTP_ArchiveRoutine(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := "owner-1"
	petID := createPet(t, ts.URL, ownerID, map[string]any{"name": "Bruno"})
	routineID := createJSON(t, ts.URL, ownerID, "/pets/"+petID+"/routines", map[string]any{"name": "Walk"})

	// Idempotente: archivar dos veces sigue siendo ok
	for i := 0; i < 2; i++ {
		st, body := doReq(t, ts.URL, "POST", "/routines/"+routineID+"/archive", ownerID, nil)
		require.Equal(t, http.StatusOK, st, "archive #%d: %s", i+1, body)
	}

	// Por defecto las archivadas no aparecen
	st, body := doReq(t, ts.URL, "GET", "/routines", ownerID, nil)
	require.Equal(t, http.StatusOK, st)
	require.Equal(t, 0, decodeList(t, body).Count)

	// Con include_inactive sí, y con is_active=false
	st, body = doReq(t, ts.URL, "GET", "/routines?include_inactive=true", ownerID, nil)
	require.Equal(t, http.StatusOK, st)
	list := decodeList(t, body)
	require.Equal(t, 1, list.Count)
	require.Equal(t, false, list.Items[0]["is_active"])
}

func TestHTTP_VisitDateDefaultsToNow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := "owner-1"
	petID := createPet(t, ts.URL, ownerID, map[string]any{"name": "Bruno"})

	before := time.Now().Add(-2 * time.Second)

	st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/visits", ownerID, map[string]any{
		"clinic_name": "VetPlus",
	})
	require.Equal(t, http.StatusCreated, st, "create visit: %s", body)

	var visit struct {
		VisitDate time.Time `json:"visit_date"`
	}
	decodeData(t, body, &visit)
	require.True(t, visit.VisitDate.After(before), "visit_date %v should default to now", visit.VisitDate)
	require.True(t, visit.VisitDate.Before(time.Now().Add(2*time.Second)))
}

func TestHTTP_MissingIdentityIsUnauthorized(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/pets", "", nil)
	require.Equal(t, http.StatusUnauthorized, st)
	require.Equal(t, "UNAUTHORIZED", decodeError(t, body))
}

func TestHTTP_ValidationFailuresCarryFieldDetail(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := "owner-1"

	// name ausente
	st, body := doReq(t, ts.URL, "POST", "/pets", ownerID, map[string]any{"species": "dog"})
	require.Equal(t, http.StatusBadRequest, st)

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	require.NotNil(t, env.Error)
	require.Equal(t, "VALIDATION", env.Error.Kind)
	require.Contains(t, env.Error.Fields, "name")

	// fecha malformada
	st, body = doReq(t, ts.URL, "POST", "/pets", ownerID, map[string]any{
		"name":       "Bruno",
		"birth_date": "not-a-date",
	})
	require.Equal(t, http.StatusBadRequest, st)
	require.NoError(t, json.Unmarshal(body, &env))
	require.Contains(t, env.Error.Fields, "birth_date")

	// status fuera del enum
	petID := createPet(t, ts.URL, ownerID, map[string]any{"name": "Bruno"})
	st, body = doReq(t, ts.URL, "POST", "/pets/"+petID+"/care-logs", ownerID, map[string]any{
		"status": "maybe",
	})
	require.Equal(t, http.StatusBadRequest, st, "bad status: %s", body)
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()
	return createJSON(t, baseURL, userID, "/pets", payload)
}

func createJSON(t *testing.T, baseURL, userID, path string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, userID, payload)
	require.Equal(t, http.StatusCreated, st, "POST %s: %s", path, body)

	var resp struct {
		ID string `json:"id"`
	}
	decodeData(t, body, &resp)
	require.NotEmpty(t, resp.ID, "POST %s: missing id in %s", path, body)
	return resp.ID
}

func decodeData(t *testing.T, body []byte, out any) {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	require.True(t, env.Success, "expected success envelope: %s", body)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func decodeList(t *testing.T, body []byte) listData {
	t.Helper()

	var list listData
	decodeData(t, body, &list)
	return list
}

func decodeError(t *testing.T, body []byte) string {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	require.False(t, env.Success)
	require.NotNil(t, env.Error, "expected error envelope: %s", body)
	return env.Error.Kind
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBody
}
