package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"wealthease-ai/internal/api/handlers"
	"wealthease-ai/internal/repository"
	"wealthease-ai/internal/service"
	"wealthease-ai/pkg/config"
	"wealthease-ai/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeOracle struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
}

func (f *fakeOracle) Invoke(context.Context, string, string, service.InvokeParams) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.reply, f.err
}

func (f *fakeOracle) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type testEnv struct {
	app      *fiber.App
	function *fiber.App
	oracle   *fakeOracle
}

func testLLMConfig() *config.LLMConfig {
	return &config.LLMConfig{
		Provider:            config.ProviderOpenAI,
		APIKey:              "test-key",
		ChatModel:           "gpt-4o-mini",
		AnalysisModel:       "gpt-3.5-turbo",
		ChatTemperature:     0.3,
		ChatMaxTokens:       500,
		AnalysisTemperature: 0.7,
		AnalysisMaxTokens:   1500,
	}
}

func newTestEnv(t *testing.T, oracle *fakeOracle) *testEnv {
	t.Helper()

	var llm *service.LLMService
	if oracle != nil {
		llm = service.NewLLMServiceWithOracle(oracle, testLLMConfig(), zap.NewNop())
	} else {
		cfg := testLLMConfig()
		cfg.APIKey = ""
		var err error
		if llm, err = service.NewLLMService(cfg, zap.NewNop()); err != nil {
			t.Fatalf("NewLLMService() error = %v", err)
		}
	}

	formatter, err := service.NewReplyFormatter(config.ReplyConfig{Locale: "en-US", Currency: "USD"})
	if err != nil {
		t.Fatalf("NewReplyFormatter() error = %v", err)
	}

	today := func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	chatbot := service.NewChatbotService(llm, formatter, zap.NewNop()).WithClock(today)
	analysis := service.NewAnalysisService(llm, zap.NewNop()).WithClock(today)
	settings := service.NewSettingsService(repository.NewMemorySettingsRepository(), zap.NewNop())

	aiHandler := handlers.NewAIHandler(chatbot, analysis, llm, zap.NewNop())
	settingsHandler := handlers.NewSettingsHandler(settings, zap.NewNop())

	store := middleware.NewLimiterStore(0)
	t.Cleanup(func() { store.Close() })

	limiters := NewLimiters(config.RateLimitConfig{
		ChatMax:        20,
		ChatWindow:     5 * time.Minute,
		AnalysisMax:    10,
		AnalysisWindow: 15 * time.Minute,
	}, store, zap.NewNop())

	return &testEnv{
		app:      SetupRouter(aiHandler, settingsHandler, limiters, config.ServerConfig{}, zap.NewNop()),
		function: SetupFunction(aiHandler, limiters.Chat, zap.NewNop()),
		oracle:   oracle,
	}
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func TestChatbotEmptyMessage(t *testing.T) {
	env := newTestEnv(t, &fakeOracle{reply: `{"kind":"expense","amount":5}`})

	for _, body := range []string{`{"message":""}`, `{}`, `{"message":"   "}`} {
		status, out := do(t, env.app, http.MethodPost, "/api/ai/chatbot", body)
		if status != fiber.StatusBadRequest || out["error"] != "Message is required" {
			t.Errorf("body %s: status = %d, out = %v", body, status, out)
		}
	}
	if env.oracle.Calls() != 0 {
		t.Errorf("oracle called %d times, want 0", env.oracle.Calls())
	}
}

func TestChatbotSingle(t *testing.T) {
	env := newTestEnv(t, &fakeOracle{reply: `{"kind":"expense","description":"Bought coffee","amount":5,"date":"2026-10-15","paymentMethod":"cash"}`})

	status, out := do(t, env.app, http.MethodPost, "/chatbot", `{"message":"Bought coffee $5 with cash"}`)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, out = %v", status, out)
	}
	if out["success"] != true || out["reply"] != `✅ Expense recorded: "Bought coffee" for $5.00 on 2026-10-15.` {
		t.Errorf("out = %v", out)
	}
	data, ok := out["data"].(map[string]any)
	if !ok || data["amount"] != float64(5) || data["paymentMethod"] != "cash" {
		t.Errorf("data = %v", out["data"])
	}
	if _, present := out["multiple"]; present {
		t.Error("multiple should be omitted for a single transaction")
	}
}

func TestChatbotMultiple(t *testing.T) {
	env := newTestEnv(t, &fakeOracle{reply: `{"transactions":[
		{"kind":"expense","description":"paid bill","amount":100},
		{"kind":"income","description":"got salary","amount":150}]}`})

	status, out := do(t, env.app, http.MethodPost, "/api/ai/chatbot", `{"message":"i paid bill $100 and got salary $150"}`)
	if status != fiber.StatusOK || out["multiple"] != true {
		t.Fatalf("status = %d, out = %v", status, out)
	}
	if list, ok := out["data"].([]any); !ok || len(list) != 2 {
		t.Errorf("data = %v", out["data"])
	}
	want := "Recorded 2 transactions:\n✅ Expense: \"paid bill\" $100.00\n✅ Income: \"got salary\" $150.00"
	if out["reply"] != want {
		t.Errorf("reply = %q, want %q", out["reply"], want)
	}
}

func TestChatbotNothingExtracted(t *testing.T) {
	env := newTestEnv(t, &fakeOracle{reply: "{}"})

	status, out := do(t, env.app, http.MethodPost, "/api/ai/chatbot", `{"message":"hello there"}`)
	if status != fiber.StatusOK || out["success"] != false {
		t.Fatalf("status = %d, out = %v", status, out)
	}
	if msg, _ := out["error"].(string); !strings.HasPrefix(msg, "Sorry, I couldn't extract transaction data") {
		t.Errorf("error = %q", msg)
	}
}

func TestChatbotUpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"quota", &service.UpstreamError{Kind: service.UpstreamQuota, Status: 429}, 429, "OpenAI API quota exceeded. Please try again later."},
		{"auth", &service.UpstreamError{Kind: service.UpstreamAuth, Status: 401}, 401, "Invalid OpenAI API key."},
		{"model", &service.UpstreamError{Kind: service.UpstreamModel, Status: 404}, 400,
			`Requested model "gpt-4o-mini" is not available. Set OPENAI_MODEL to a model your account can access (e.g., gpt-4o-mini) and redeploy.`},
		{"unknown", &service.UpstreamError{Kind: service.UpstreamUnknown, Status: 502, Message: "bad gateway"}, 500, "bad gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, &fakeOracle{err: tt.err})
			status, out := do(t, env.app, http.MethodPost, "/api/ai/chatbot", `{"message":"bought coffee $5"}`)
			if status != tt.wantStatus || out["error"] != tt.wantError {
				t.Errorf("status = %d, out = %v, want %d %q", status, out, tt.wantStatus, tt.wantError)
			}
		})
	}
}

func TestNotConfigured(t *testing.T) {
	env := newTestEnv(t, nil)

	status, out := do(t, env.app, http.MethodPost, "/api/ai/chatbot", `{"message":"bought coffee $5"}`)
	if status != fiber.StatusInternalServerError || out["error"] != "OpenAI API key not configured" {
		t.Errorf("chatbot: status = %d, out = %v", status, out)
	}

	status, out = do(t, env.app, http.MethodPost, "/analyze-transactions", `{"transactions":[{"type":"expense","amount":5}]}`)
	if status != fiber.StatusInternalServerError || out["error"] != "OpenAI API key not configured" {
		t.Errorf("analyze: status = %d, out = %v", status, out)
	}

	status, out = do(t, env.app, http.MethodGet, "/health", "")
	if status != fiber.StatusOK || out["status"] != "healthy" || out["openaiConfigured"] != false {
		t.Errorf("health: status = %d, out = %v", status, out)
	}
}

func TestChatbotRateLimit(t *testing.T) {
	env := newTestEnv(t, &fakeOracle{reply: `{"kind":"expense","amount":5}`})

	for i := 1; i <= 20; i++ {
		path := "/api/ai/chatbot"
		if i%2 == 0 {
			path = "/chatbot"
		}
		if status, out := do(t, env.app, http.MethodPost, path, `{"message":"coffee 5"}`); status != fiber.StatusOK {
			t.Fatalf("request %d: status = %d, out = %v", i, status, out)
		}
	}

	status, out := do(t, env.app, http.MethodPost, "/api/ai/chatbot", `{"message":"coffee 5"}`)
	if status != fiber.StatusTooManyRequests || out["error"] != middleware.ChatbotLimitMessage {
		t.Errorf("21st request: status = %d, out = %v", status, out)
	}
	if env.oracle.Calls() != 20 {
		t.Errorf("oracle called %d times, want 20", env.oracle.Calls())
	}

	// analysis has its own budget
	if status, _ := do(t, env.app, http.MethodGet, "/api/ai/health", ""); status != fiber.StatusOK {
		t.Errorf("health status = %d", status)
	}
}

const reportReply = `{"analysis":"ok","recommendations":["save more"],"predictions":{"nextWeekBalance":100,"nextMonthBalance":200,"trend":"bullish","summary":"up"},"warnings":"none","score":{"financialHealth":80,"spendingDiscipline":70,"savingsRate":60,"volatility":10,"confidence":90}}`

func TestAnalyzeTransactions(t *testing.T) {
	env := newTestEnv(t, &fakeOracle{reply: reportReply})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"missing", `{}`, 400, "Invalid transactions data"},
		{"not an array", `{"transactions":{"a":1}}`, 400, "Invalid transactions data"},
		{"null", `{"transactions":null}`, 400, "Invalid transactions data"},
		{"empty", `{"transactions":[]}`, 400, "No transactions to analyze"},
	}
	for _, tt := range tests {
		status, out := do(t, env.app, http.MethodPost, "/api/ai/analyze-transactions", tt.body)
		if status != tt.wantStatus || out["error"] != tt.wantError {
			t.Errorf("%s: status = %d, out = %v", tt.name, status, out)
		}
	}
	if env.oracle.Calls() != 0 {
		t.Fatalf("oracle called %d times before a valid request", env.oracle.Calls())
	}

	body := `{"transactions":[{"date":"2026-10-01","type":"income","amount":1000,"category":"Salary"},{"date":"2026-10-02","type":"expense","amount":50,"category":"Food"}],"userProfile":{"name":"Ayu"}}`
	status, out := do(t, env.app, http.MethodPost, "/analyze-transactions", body)
	if status != fiber.StatusOK || out["success"] != true {
		t.Fatalf("status = %d, out = %v", status, out)
	}
	analysis, _ := out["analysis"].(map[string]any)
	if analysis["recommendations"] != "save more" {
		t.Errorf("analysis = %v", analysis)
	}
	if out["rawResponse"] != reportReply {
		t.Errorf("rawResponse = %v", out["rawResponse"])
	}
	if _, err := time.Parse(time.RFC3339, out["timestamp"].(string)); err != nil {
		t.Errorf("timestamp %v: %v", out["timestamp"], err)
	}
}

func TestAnalyzeFallbackAndFailure(t *testing.T) {
	env := newTestEnv(t, &fakeOracle{reply: "I think you are doing fine."})
	body := `{"transactions":[{"type":"expense","amount":5,"category":"Food"}]}`

	status, out := do(t, env.app, http.MethodPost, "/api/ai/analyze-transactions", body)
	analysis, _ := out["analysis"].(map[string]any)
	if status != fiber.StatusOK || analysis["analysis"] != "Unable to parse AI response. Please try again." {
		t.Errorf("status = %d, out = %v", status, out)
	}

	env = newTestEnv(t, &fakeOracle{err: &service.UpstreamError{Kind: service.UpstreamUnknown, Message: "boom"}})
	status, out = do(t, env.app, http.MethodPost, "/api/ai/analyze-transactions", body)
	if status != fiber.StatusInternalServerError || out["error"] != "Failed to analyze transactions" || out["details"] == "" {
		t.Errorf("status = %d, out = %v", status, out)
	}

	env = newTestEnv(t, &fakeOracle{err: &service.UpstreamError{Kind: service.UpstreamQuota}})
	if status, _ = do(t, env.app, http.MethodPost, "/api/ai/analyze-transactions", body); status != fiber.StatusTooManyRequests {
		t.Errorf("quota status = %d, want 429", status)
	}
}

func TestAnalyzeRateLimit(t *testing.T) {
	env := newTestEnv(t, &fakeOracle{reply: reportReply})
	body := `{"transactions":[{"type":"expense","amount":5}]}`

	for i := 0; i < 10; i++ {
		do(t, env.app, http.MethodPost, "/api/ai/analyze-transactions", body)
	}
	status, out := do(t, env.app, http.MethodPost, "/analyze-transactions", body)
	if status != fiber.StatusTooManyRequests || out["error"] != middleware.AnalysisLimitMessage {
		t.Errorf("11th request: status = %d, out = %v", status, out)
	}
	if env.oracle.Calls() != 10 {
		t.Errorf("oracle called %d times, want 10", env.oracle.Calls())
	}
}

func TestProbeEndpoint(t *testing.T) {
	env := newTestEnv(t, &fakeOracle{reply: "OpenAI integration is working correctly"})

	status, out := do(t, env.app, http.MethodPost, "/api/ai/test", "")
	if status != fiber.StatusOK || out["message"] != "OpenAI integration is working correctly" {
		t.Errorf("status = %d, out = %v", status, out)
	}
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t, &fakeOracle{})

	status, out := do(t, env.app, http.MethodGet, "/nope", "")
	if status != fiber.StatusNotFound || out["success"] != false {
		t.Errorf("status = %d, out = %v", status, out)
	}
}

func TestSettingsRoutes(t *testing.T) {
	env := newTestEnv(t, &fakeOracle{})
	base := "/api/settings/" + uuid.NewString()

	if status, _ := do(t, env.app, http.MethodGet, "/api/settings/not-a-uuid", ""); status != fiber.StatusBadRequest {
		t.Errorf("invalid client id status = %d", status)
	}

	status, out := do(t, env.app, http.MethodGet, base, "")
	if status != fiber.StatusOK || out["userAvatar"] != "🐶" || out["emailNotifications"] != true {
		t.Fatalf("defaults: status = %d, out = %v", status, out)
	}

	for _, step := range []struct{ path, body string }{
		{"/keys/transactions", `{"value":"[{\"amount\":5}]"}`},
		{"/keys/wealthease_bills", `{"value":"[]"}`},
		{"/keys/isLoggedIn", `{"value":"true"}`},
		{"/keys/userData", `{"value":"{\"name\":\"Ayu\"}"}`},
		{"/avatar", `{"avatar":"🐱"}`},
		{"/preferences/twoFactorEnabled", `{"enabled":true}`},
	} {
		if status, out := do(t, env.app, http.MethodPut, base+step.path, step.body); status != fiber.StatusOK {
			t.Fatalf("PUT %s: status = %d, out = %v", step.path, status, out)
		}
	}

	if status, _ := do(t, env.app, http.MethodPut, base+"/keys/theme", `{"value":"dark"}`); status != fiber.StatusBadRequest {
		t.Errorf("unknown key status = %d, want 400", status)
	}
	if status, _ := do(t, env.app, http.MethodPut, base+"/avatar", `{"avatar":""}`); status != fiber.StatusBadRequest {
		t.Errorf("empty avatar status = %d, want 400", status)
	}

	status, out = do(t, env.app, http.MethodPost, base+"/clear-data", "")
	if status != fiber.StatusOK || out["redirect"] != "dashboard.html" {
		t.Fatalf("clear-data: status = %d, out = %v", status, out)
	}
	if removed, _ := out["removedKeys"].([]any); len(removed) != 2 {
		t.Errorf("removedKeys = %v, want transactions and wealthease_bills", out["removedKeys"])
	}

	_, out = do(t, env.app, http.MethodGet, base, "")
	if out["isLoggedIn"] != true || out["userAvatar"] != "🐱" || out["twoFactorEnabled"] != true {
		t.Errorf("after clear-data: %v", out)
	}

	status, out = do(t, env.app, http.MethodPost, base+"/logout", "")
	if status != fiber.StatusOK || out["redirect"] != "login.html" {
		t.Fatalf("logout: status = %d, out = %v", status, out)
	}

	_, out = do(t, env.app, http.MethodGet, base, "")
	if out["isLoggedIn"] != false || out["userAvatar"] != "🐱" {
		t.Errorf("after logout: %v", out)
	}
	if userData, _ := out["userData"].(map[string]any); userData["name"] != "Ayu" {
		t.Errorf("userData = %v", out["userData"])
	}
}

func TestClearDataAfterOtherTraffic(t *testing.T) {
	env := newTestEnv(t, &fakeOracle{})
	base := "/api/settings/" + uuid.NewString()

	if status, out := do(t, env.app, http.MethodPut, base+"/keys/transactions", `{"value":"[1]"}`); status != fiber.StatusOK {
		t.Fatalf("PUT: status = %d, out = %v", status, out)
	}
	for i := 0; i < 3; i++ {
		do(t, env.app, http.MethodGet, "/api/ai/health", "")
	}

	status, out := do(t, env.app, http.MethodPost, base+"/clear-data", "")
	if status != fiber.StatusOK {
		t.Fatalf("clear-data: status = %d, out = %v", status, out)
	}
	removed, _ := out["removedKeys"].([]any)
	if len(removed) != 1 || removed[0] != "transactions" {
		t.Errorf("removedKeys = %v, want [transactions]", out["removedKeys"])
	}

	_, out = do(t, env.app, http.MethodGet, base, "")
	if keys, _ := out["keys"].([]any); len(keys) != 0 {
		t.Errorf("keys after clear-data = %v, want none", out["keys"])
	}
}

func TestAnalyzeAcceptsClientRecordShape(t *testing.T) {
	env := newTestEnv(t, &fakeOracle{reply: reportReply})

	body := `{"transactions":[{"id":1729000000000,"date":"2026-10-01","type":"expense","amount":5,"category":"Food","paymentMethod":"cash"}]}`
	status, out := do(t, env.app, http.MethodPost, "/api/ai/analyze-transactions", body)
	if status != fiber.StatusOK || out["success"] != true {
		t.Fatalf("status = %d, out = %v", status, out)
	}
	if env.oracle.Calls() != 1 {
		t.Errorf("oracle called %d times, want 1", env.oracle.Calls())
	}
}

func TestFunctionBinding(t *testing.T) {
	env := newTestEnv(t, &fakeOracle{reply: `{"kind":"income","description":"salary","amount":"3,500"}`})

	status, out := do(t, env.function, http.MethodGet, "/", "")
	if status != fiber.StatusOK || out["ok"] != true || out["service"] != "wealthease-chatbot" ||
		out["openaiConfigured"] != true || out["model"] != "gpt-4o-mini" {
		t.Errorf("GET: status = %d, out = %v", status, out)
	}

	resp, err := env.function.Test(httptest.NewRequest(http.MethodOptions, "/api/chatbot", nil))
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || len(raw) != 0 {
		t.Errorf("OPTIONS: status = %d, body = %q", resp.StatusCode, raw)
	}
	if resp.Header.Get(fiber.HeaderAccessControlAllowOrigin) != "*" {
		t.Error("OPTIONS: missing CORS headers")
	}

	status, out = do(t, env.function, http.MethodPut, "/", `{}`)
	if status != fiber.StatusMethodNotAllowed || out["error"] != "Method not allowed" {
		t.Errorf("PUT: status = %d, out = %v", status, out)
	}
	if env.oracle.Calls() != 0 {
		t.Fatalf("oracle called %d times before POST", env.oracle.Calls())
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", strings.NewReader(`{"message":"nerima gaji 3500"}`))
	req.Header.Set("Content-Type", "application/json")
	FunctionHandler(env.function).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST via net/http: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `$3,500.00`) {
		t.Errorf("POST via net/http: body = %s", rec.Body.String())
	}
}
