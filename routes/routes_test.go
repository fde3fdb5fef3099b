package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace/handlers"
	"marketplace/models"
	"marketplace/services/order"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
)

// Every stub method fails with its own name so a response shows which
// service method the route reached.
func reached(name string) error { return utils.NewValidationError(name) }

type stubAvailability struct{}

func (stubAvailability) GetAvailability(context.Context, int64, string) (*models.Availability, error) {
	return nil, reached("GetAvailability")
}

func (stubAvailability) CheckWindow(context.Context, int64, string, int, int) error { return nil }

type stubExecutors struct{}

func (stubExecutors) Register(context.Context, models.RegisterExecutorRequest) (*models.Executor, error) {
	return nil, reached("Register")
}

func (stubExecutors) GetExecutor(context.Context, int64) (*models.Executor, error) {
	return nil, reached("GetExecutor")
}

func (stubExecutors) ListExecutors(context.Context, models.ExecutorSearchCriteria) ([]models.Executor, error) {
	return nil, reached("ListExecutors")
}

type stubSchedule struct{}

func (stubSchedule) GetWeeklyHours(context.Context, int64) ([]models.WeeklyHours, error) {
	return nil, reached("GetWeeklyHours")
}

func (stubSchedule) GetDay(context.Context, int64, int) (*models.WeeklyHours, error) { return nil, nil }

func (stubSchedule) SetWeeklyHours(context.Context, int64, []models.WeeklyHours) ([]models.WeeklyHours, error) {
	return nil, reached("SetWeeklyHours")
}

type stubCalendar struct{}

func (stubCalendar) CreateEvent(context.Context, int64, models.CreateEventRequest) (*models.CalendarEvent, error) {
	return nil, reached("CreateEvent")
}

func (stubCalendar) ListEvents(context.Context, int64, string) ([]models.CalendarEvent, error) {
	return nil, reached("ListEvents")
}

func (stubCalendar) DeleteEvent(context.Context, int64, int64) error { return reached("DeleteEvent") }

type stubOrders struct{}

func (stubOrders) CreateOrder(context.Context, models.CreateOrderRequest) (*models.Order, error) {
	return nil, reached("CreateOrder")
}

func (stubOrders) GetOrder(context.Context, int64) (*models.Order, error) {
	return nil, reached("GetOrder")
}

func (stubOrders) ListOrders(context.Context, order.OrderFilter) ([]models.Order, error) {
	return nil, reached("ListOrders")
}

func (stubOrders) UpdateStatus(context.Context, int64, string) (*models.Order, error) {
	return nil, reached("UpdateStatus")
}

func newRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	monitor := utils.NewHealthMonitor(0, map[string]utils.HealthCheck{
		"database": func(context.Context) error { return nil },
	})
	monitor.Check(context.Background())

	hb := &handlers.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(stubAvailability{}),
		Executor:     handlers.NewExecutorHandler(stubExecutors{}),
		Schedule:     handlers.NewScheduleHandler(stubSchedule{}),
		Calendar:     handlers.NewCalendarHandler(stubCalendar{}),
		Order:        handlers.NewOrderHandler(stubOrders{}),
		Health:       monitor,
	}
	r := gin.New()
	RegisterRoutes(r, hb, origins)
	return r
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutesReachesEveryHandler(t *testing.T) {
	r := newRouter([]string{"*"})

	tests := []struct {
		method string
		target string
		body   string
		want   string
	}{
		{http.MethodGet, "/api/executor/schedule?executorId=1&date=2030-01-07", "", "GetAvailability"},
		{http.MethodPost, "/api/executors", `{"name":"Ann","email":"ann@example.com"}`, "Register"},
		{http.MethodGet, "/api/executors", "", "ListExecutors"},
		{http.MethodGet, "/api/executors/1", "", "GetExecutor"},
		{http.MethodGet, "/api/executors/1/working-hours", "", "GetWeeklyHours"},
		{http.MethodPut, "/api/executors/1/working-hours", `{"days":[{"dayOfWeek":0}]}`, "SetWeeklyHours"},
		{http.MethodPost, "/api/executors/1/events", `{"title":"Gym","date":"2030-01-07","time":"07:00","duration":60}`, "CreateEvent"},
		{http.MethodGet, "/api/executors/1/events?date=2030-01-07", "", "ListEvents"},
		{http.MethodDelete, "/api/executors/1/events/2", "", "DeleteEvent"},
		{http.MethodPost, "/api/orders", `{"clientId":1,"executorId":2,"title":"Fix","date":"2030-01-07","time":"10:00"}`, "CreateOrder"},
		{http.MethodGet, "/api/orders?clientId=1", "", "ListOrders"},
		{http.MethodGet, "/api/orders/1", "", "GetOrder"},
		{http.MethodPatch, "/api/orders/1/status", `{"status":"confirmed"}`, "UpdateStatus"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			var req *http.Request
			if tt.body == "" {
				req = httptest.NewRequest(tt.method, tt.target, nil)
			} else {
				req = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			}
			w := do(r, req)
			if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), tt.want) {
				t.Fatalf("got %d %s, want 400 from %s", w.Code, w.Body, tt.want)
			}
		})
	}
}

func TestRegisterRoutesHealthAndUnknownPath(t *testing.T) {
	r := newRouter([]string{"*"})

	w := do(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("health = %d %s", w.Code, w.Body)
	}
	if w := do(r, httptest.NewRequest(http.MethodGet, "/api/unknown", nil)); w.Code != http.StatusNotFound {
		t.Fatalf("unknown path status = %d", w.Code)
	}
}

func TestRegisterRoutesCORS(t *testing.T) {
	r := newRouter([]string{"https://app.example.com"})

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := do(r, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("allow origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("allow credentials = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	if w := do(r, req); w.Code != http.StatusForbidden {
		t.Fatalf("foreign origin status = %d", w.Code)
	}
}
