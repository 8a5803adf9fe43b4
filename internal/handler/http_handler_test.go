package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/T1mof/timetrack-reports/internal/domain"
	"github.com/T1mof/timetrack-reports/internal/export"
	"github.com/T1mof/timetrack-reports/internal/render"
)

// ==================== Mock Service ====================

type MockService struct {
	mock.Mock
}

func (m *MockService) UserActivitySum(ctx context.Context, filter domain.ReportFilter) (*domain.UserActivitySumReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserActivitySumReport), args.Error(1)
}

// ==================== Helpers ====================

func newTestRouter(t *testing.T, svc *MockService, token string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := render.NewRenderer("EUR")
	require.NoError(t, err)

	h := NewHandler(svc, renderer, Options{
		ReportToken:    token,
		ExportFilename: "timetrack-export-user-activity-sum",
	})
	return h.SetupRouter()
}

func sampleReport() *domain.UserActivitySumReport {
	user := domain.User{ID: uuid.New(), Username: "alice"}
	activity := domain.Activity{ID: uuid.New(), Name: "Development"}
	total := domain.NewActivityTotal(activity.ID)
	total.AddForUser(user.ID, domain.Totals{Duration: 6300, Rate: decimal.NewFromInt(105)})

	return &domain.UserActivitySumReport{
		ReportTitle:    domain.ReportTitleUserActivitySum,
		ExportRoute:    domain.ExportRouteUserActivitySum,
		Filter:         domain.ReportFilter{Date: "2024-05", SumType: domain.SumTypeDuration, Decimal: true},
		Start:          time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		End:            time.Date(2024, time.May, 31, 23, 59, 59, 0, time.UTC),
		SumType:        domain.SumTypeDuration,
		Decimal:        true,
		Users:          []domain.User{user},
		UsersByID:      map[uuid.UUID]domain.User{user.ID: user},
		Activities:     map[uuid.UUID]domain.Activity{activity.ID: activity},
		ActivityTotals: map[uuid.UUID]*domain.ActivityTotal{activity.ID: total},
		HasData:        true,
	}
}

// ==================== Tests ====================

func TestHealthCheck(t *testing.T) {
	mockService := new(MockService)
	router := newTestRouter(t, mockService, "")

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
}

func TestUserActivitySum_Success(t *testing.T) {
	mockService := new(MockService)
	router := newTestRouter(t, mockService, "")

	expectedFilter := domain.ReportFilter{Date: "2024-05", SumType: "duration", Decimal: true}
	mockService.On("UserActivitySum", mock.Anything, expectedFilter).Return(sampleReport(), nil)

	req := httptest.NewRequest("GET", "/reporting/users/activity-sum?date=2024-05&sumType=duration&decimal=1", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<th>Development</th>")
	assert.Contains(t, w.Body.String(), `data-value="1.75"`)
	mockService.AssertExpectations(t)
}

func TestUserActivitySum_PostUsesQueryString(t *testing.T) {
	mockService := new(MockService)
	router := newTestRouter(t, mockService, "")

	teamID := uuid.New()
	expectedFilter := domain.ReportFilter{Date: "2024-04", Team: teamID.String()}
	mockService.On("UserActivitySum", mock.Anything, expectedFilter).Return(sampleReport(), nil)

	req := httptest.NewRequest("POST", "/reporting/users/activity-sum?date=2024-04&team="+teamID.String(), http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestUserActivitySum_MalformedQuery(t *testing.T) {
	mockService := new(MockService)
	router := newTestRouter(t, mockService, "")

	mockService.On("UserActivitySum", mock.Anything, domain.ReportFilter{Malformed: true}).Return(sampleReport(), nil)

	req := httptest.NewRequest("GET", "/reporting/users/activity-sum?decimal=maybe", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestUserActivitySum_NoData(t *testing.T) {
	mockService := new(MockService)
	router := newTestRouter(t, mockService, "")

	report := sampleReport()
	report.HasData = false
	report.Users = nil
	report.ActivityTotals = map[uuid.UUID]*domain.ActivityTotal{}
	mockService.On("UserActivitySum", mock.Anything, mock.Anything).Return(report, nil)

	req := httptest.NewRequest("GET", "/reporting/users/activity-sum", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No users match the selected filter.")
}

func TestUserActivitySum_ServiceError(t *testing.T) {
	mockService := new(MockService)
	router := newTestRouter(t, mockService, "")

	mockService.On("UserActivitySum", mock.Anything, mock.Anything).Return(nil, errors.New("database unavailable"))

	req := httptest.NewRequest("GET", "/reporting/users/activity-sum", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "INTERNAL_ERROR", response.Error.Code)
	assert.Contains(t, response.Error.Message, "database unavailable")
}

func TestUserActivitySum_Unauthorized(t *testing.T) {
	mockService := new(MockService)
	router := newTestRouter(t, mockService, "report-secret")

	req := httptest.NewRequest("GET", "/reporting/users/activity-sum", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "UserActivitySum", mock.Anything, mock.Anything)
}

func TestUserActivitySumExport_Success(t *testing.T) {
	mockService := new(MockService)
	router := newTestRouter(t, mockService, "report-secret")

	mockService.On("UserActivitySum", mock.Anything, mock.Anything).Return(sampleReport(), nil)

	req := httptest.NewRequest("GET", "/reporting/users/activity-sum_export?date=2024-05&decimal=1", http.NoBody)
	req.Header.Set("X-Report-Token", "report-secret")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="timetrack-export-user-activity-sum.xlsx"`, w.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Activity", "alice", "Total"}, rows[0])
	assert.Equal(t, []string{"Total", "1.75", "1.75"}, rows[2])
	mockService.AssertExpectations(t)
}

func TestUserActivitySumExport_ServiceError(t *testing.T) {
	mockService := new(MockService)
	router := newTestRouter(t, mockService, "")

	mockService.On("UserActivitySum", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	req := httptest.NewRequest("POST", "/reporting/users/activity-sum_export", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
