package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"tce-quiz-dashboard/internal/app"
	"tce-quiz-dashboard/internal/infra/jsonfile"
	"tce-quiz-dashboard/internal/infra/memory"
)

func TestDashboardFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/register", "", map[string]string{
		"username": "alice", "password": "pw", "batch": "Boot Camp Batch 1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body)
	}

	adminID := login(t, router, "admin", "AdminTCE")
	studentID := login(t, router, "alice", "pw")

	form := url.Values{"question": {"2+2?"}, "type": {"Text"}, "answer": {"4"}}
	rec = doForm(t, router, "/api/admin/questions", adminID, form)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create question: %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/student/questions", studentID, nil)
	var pending []app.StudentQuestion
	decodeData(t, rec, &pending)
	if len(pending) != 0 {
		t.Fatalf("expected nothing before launch, got %+v", pending)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/admin/questions/1/launch", adminID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("launch: %d %s", rec.Code, rec.Body)
	}
	rec = doJSON(t, router, http.MethodPost, "/api/admin/questions/1/launch", adminID, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected conflict on relaunch, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/student/questions", studentID, nil)
	decodeData(t, rec, &pending)
	if len(pending) != 1 || pending[0].Question != "2+2?" {
		t.Fatalf("expected launched question, got %+v", pending)
	}
	if strings.Contains(rec.Body.String(), `"answer"`) {
		t.Fatalf("student view must not expose the answer: %s", rec.Body)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/student/answers", studentID, map[string]string{"question": "2+2?", "response": "4"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("answer: %d %s", rec.Code, rec.Body)
	}
	rec = doJSON(t, router, http.MethodPost, "/api/student/answers", studentID, map[string]string{"question": "2+2?", "response": "4"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected conflict on double submit, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/admin/summary", adminID, nil)
	var summary struct {
		Rows []struct {
			TotalAnswers    int    `json:"total_answers"`
			Correct         int    `json:"correct"`
			Incorrect       int    `json:"incorrect"`
			NotAnswered     int    `json:"not_answered"`
			FirstAnsweredBy string `json:"first_answered_by"`
		} `json:"rows"`
	}
	decodeData(t, rec, &summary)
	if len(summary.Rows) != 1 {
		t.Fatalf("expected one summary row, got %s", rec.Body)
	}
	row := summary.Rows[0]
	if row.TotalAnswers != 1 || row.Correct != 1 || row.Incorrect != 0 || row.NotAnswered != 0 || row.FirstAnsweredBy != "alice" {
		t.Fatalf("unexpected summary row %+v", row)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/student/responses", studentID, nil)
	var history []map[string]any
	decodeData(t, rec, &history)
	if len(history) != 1 || history[0]["response"] != "4" {
		t.Fatalf("unexpected history %s", rec.Body)
	}
}

func TestRegisterReservedAndLoginErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/register", "", map[string]string{
		"username": "Admin", "password": "pw", "batch": "Boot Camp Batch 2",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for reserved name, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/login", "", map[string]string{"username": "ghost", "password": "pw"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", rec.Code)
	}
}

func TestRoleGuards(t *testing.T) {
	router, _ := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/register", "", map[string]string{
		"username": "alice", "password": "pw", "batch": "Boot Camp Batch 1",
	})
	adminID := login(t, router, "admin", "AdminTCE")
	studentID := login(t, router, "alice", "pw")

	if rec := doJSON(t, router, http.MethodGet, "/api/admin/summary", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, "/api/admin/summary", studentID, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student on admin route, got %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, "/api/student/questions", adminID, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin on student route, got %d", rec.Code)
	}

	if rec := doJSON(t, router, http.MethodPost, "/api/logout", studentID, nil); rec.Code != http.StatusOK {
		t.Fatalf("logout: %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, "/api/me", studentID, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestCreateQuestionWithImageUpload(t *testing.T) {
	router, _ := newTestRouter(t)
	adminID := login(t, router, "admin", "AdminTCE")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("question", "Which shape?")
	_ = mw.WriteField("type", "MCQ")
	for _, opt := range []string{"circle", "square", "triangle", "hexagon"} {
		_ = mw.WriteField("options", opt)
	}
	_ = mw.WriteField("answer", "triangle")
	part, err := mw.CreateFormFile("image", "shape.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	_, _ = part.Write([]byte("fake-png"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/questions", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(SessionHeader, adminID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, router, http.MethodGet, "/question_images/shape.png", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "fake-png" {
		t.Fatalf("expected image served, got %d %q", rec.Code, rec.Body)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/admin/questions", adminID, nil)
	var listed []AdminQuestion
	decodeData(t, rec, &listed)
	if len(listed) != 1 || listed[0].Index != 1 || listed[0].Answer != "triangle" || len(listed[0].Options) != 4 {
		t.Fatalf("unexpected question list %s", rec.Body)
	}
}

func TestSummaryWebSocket(t *testing.T) {
	router, service := newTestRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	adminID := login(t, router, "admin", "AdminTCE")

	u := "ws" + server.URL[len("http"):] + "/ws/admin/summary"
	header := http.Header{}
	header.Set(SessionHeader, adminID)
	conn, _, err := websocket.DefaultDialer.Dial(u, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if msg := readSummary(t, conn); len(msg.Payload.Rows) != 0 {
		t.Fatalf("expected empty initial summary, got %+v", msg)
	}

	if _, err := service.CreateQuestion(context.Background(), app.QuestionInput{
		Text: "2+2?", Type: "Text", Answer: "4",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	msg := readSummary(t, conn)
	if msg.Type != "summary" || len(msg.Payload.Rows) != 1 || msg.Payload.Rows[0].Question != "2+2?" {
		t.Fatalf("expected summary with new question, got %+v", msg)
	}
}

type summaryMessage struct {
	Type    string `json:"type"`
	Payload struct {
		Rows []struct {
			Question string `json:"question"`
		} `json:"rows"`
	} `json:"payload"`
}

func readSummary(t *testing.T, conn *websocket.Conn) summaryMessage {
	t.Helper()
	var msg summaryMessage
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg
}

func newTestRouter(t *testing.T) (*gin.Engine, *app.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	images := jsonfile.NewImageStore(dir)
	service := app.NewService(app.Stores{
		Users:     jsonfile.NewUserStore(dir),
		Questions: jsonfile.NewQuestionStore(dir),
		Responses: jsonfile.NewResponseStore(dir),
		Images:    images,
	}, memory.NewSessionStore(), app.NewFeed())
	return NewRouter(service, RouterOptions{ImageDir: images.Dir()}), service
}

func login(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/login", "", map[string]string{"username": username, "password": password})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", username, rec.Code, rec.Body)
	}
	var out LoginResponse
	decodeData(t, rec, &out)
	if out.SessionID == "" {
		t.Fatalf("expected session id, got %s", rec.Body)
	}
	return out.SessionID
}

func doJSON(t *testing.T, router http.Handler, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doForm(t *testing.T, router http.Handler, path, sessionID string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(SessionHeader, sessionID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v (%s)", err, rec.Body)
	}
}
