package waitlist

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupWaitlistRoutes(r.Group("/api/v1"), NewController(svc))
	return r
}

func send(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJoinRoute(t *testing.T) {
	r := setupRouter(newTestService(newMemRepository(), &fakeMailer{}, nil))
	body := `{"event_id":"E-001","name":"Ada","email":"a@b.com","contact":"555-0100"}`

	w := send(r, http.MethodPost, "/api/v1/waitlist", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = send(r, http.MethodPost, "/api/v1/waitlist", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already on the waitlist")

	w = send(r, http.MethodPost, "/api/v1/waitlist", `{"event_id":"E-001","name":"Ada","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"email"`)
}

func TestNotifyRouteStatus(t *testing.T) {
	seed := []Entry{
		{WaitlistID: "W-1", EventID: "E-001", Name: "Ada", Email: "ada@example.com", Status: StatusWaiting},
		{WaitlistID: "W-2", EventID: "E-001", Name: "Bob", Email: "bob@example.com", Status: StatusWaiting},
	}

	t.Run("all delivered", func(t *testing.T) {
		r := setupRouter(newTestService(newMemRepository(seed...), &fakeMailer{}, nil))

		w := send(r, http.MethodPost, "/api/v1/waitlist/notify/E-001", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"succeeded":2`)
	})

	t.Run("partial failure", func(t *testing.T) {
		mailer := &fakeMailer{bounce: map[string]bool{"bob@example.com": true}}
		r := setupRouter(newTestService(newMemRepository(seed...), mailer, nil))

		w := send(r, http.MethodPost, "/api/v1/waitlist/notify/E-001", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
		assert.Contains(t, w.Body.String(), `"failed":1`)
	})

	t.Run("unknown event", func(t *testing.T) {
		r := setupRouter(newTestService(newMemRepository(), &fakeMailer{}, nil))

		w := send(r, http.MethodPost, "/api/v1/waitlist/notify/E-404", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateStatusRouteValidates(t *testing.T) {
	r := setupRouter(newTestService(newMemRepository(), &fakeMailer{}, nil))

	w := send(r, http.MethodPatch, "/api/v1/waitlist/W-1", `{"status":"gone"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPatch, "/api/v1/waitlist/W-1", `{"status":"registered"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
