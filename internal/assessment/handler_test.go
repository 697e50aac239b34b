package assessment_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/aptitude-lambda/internal/assessment"
	"github.com/saulo-duarte/aptitude-lambda/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(h *harness, s auth.Session) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := auth.WithSession(req.Context(), &auth.Claims{UserID: s.UserID.String()}, s)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Mount("/attempts", assessment.Routes(assessment.NewHandler(h.manager)))
	return r
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, assessment.Snapshot) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var snap assessment.Snapshot
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	}
	return rec, snap
}

func TestHandlerAttemptFlow(t *testing.T) {
	h := newHarness(600)
	defer h.manager.Close()
	srv := newTestServer(h, student())

	rec, snap := doJSON(t, srv, http.MethodPost, "/attempts", map[string]string{"category": "aptitude"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, assessment.InProgress, snap.State)
	assert.Equal(t, 600, snap.RemainingSeconds)
	assert.Equal(t, "en", snap.Lang)
	assert.NotContains(t, rec.Body.String(), "correct_index")
	base := "/attempts/" + snap.ID.String()

	rec, _ = doJSON(t, srv, http.MethodPost, base+"/answer", map[string]int{"option": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, snap = doJSON(t, srv, http.MethodPost, base+"/answer", map[string]int{"option": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, snap.Answers[0])
	assert.Equal(t, 1, *snap.Answers[0])

	rec, _ = doJSON(t, srv, http.MethodPost, base+"/advance", map[string]string{"direction": "sideways"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, snap = doJSON(t, srv, http.MethodPost, base+"/advance", map[string]string{"direction": "forward"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, snap.CurrentIndex)

	rec, snap = doJSON(t, srv, http.MethodPost, base+"/finish", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, snap.Result)
	assert.Equal(t, 1, snap.Result.Score)
	assert.Equal(t, 33, snap.Result.Percent)

	rec, again := doJSON(t, srv, http.MethodPost, base+"/finish", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, again.Result)
	assert.Equal(t, snap.Result.Score, again.Result.Score)

	rec, _ = doJSON(t, srv, http.MethodPost, base+"/answer", map[string]int{"option": 0})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerStartErrors(t *testing.T) {
	h := newHarness(600)
	defer h.manager.Close()
	srv := newTestServer(h, student())

	rec, _ := doJSON(t, srv, http.MethodPost, "/attempts", map[string]string{"category": "astrology"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodPost, "/attempts", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodPost, "/attempts", map[string]string{"category": "law", "lang": "fr"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	h.source.questions = nil
	rec, _ = doJSON(t, srv, http.MethodPost, "/attempts", map[string]string{"category": "law"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodGet, "/attempts/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerOtherOwnerCannotSeeAttempt(t *testing.T) {
	h := newHarness(600)
	defer h.manager.Close()

	rec, snap := doJSON(t, newTestServer(h, student()), http.MethodPost, "/attempts", map[string]string{"category": "tax"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = doJSON(t, newTestServer(h, student()), http.MethodGet, "/attempts/"+snap.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
