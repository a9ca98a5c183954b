package attendance_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hrms/internal/attendance"
	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	m.Run()
}

type fakeAttendanceService struct {
	MarkFn           func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error)
	ListFn           func(ctx context.Context, employeeID, date string) ([]attendance.AttendanceResponse, error)
	PresentSummaryFn func(ctx context.Context) ([]attendance.PresentSummaryResponse, error)
	ExportFn         func(ctx context.Context, employeeID, date string) (*bytes.Buffer, string, error)
}

func (f *fakeAttendanceService) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.MarkFn(ctx, req)
}
func (f *fakeAttendanceService) List(ctx context.Context, employeeID, date string) ([]attendance.AttendanceResponse, error) {
	return f.ListFn(ctx, employeeID, date)
}
func (f *fakeAttendanceService) PresentSummary(ctx context.Context) ([]attendance.PresentSummaryResponse, error) {
	return f.PresentSummaryFn(ctx)
}
func (f *fakeAttendanceService) Export(ctx context.Context, employeeID, date string) (*bytes.Buffer, string, error) {
	return f.ExportFn(ctx, employeeID, date)
}

func TestAttendanceHandler_Mark(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAttendanceService{
			MarkFn: func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, "EMP-001", req.EmployeeID)
				assert.Equal(t, attendance.StatusPresent, req.Status)
				return attendance.AttendanceResponse{
					ID:         1,
					EmployeeID: req.EmployeeID,
					Date:       req.Date,
					Status:     req.Status,
				}, nil
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"EMP-001","date":"2026-09-01","status":"Present"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Mark(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "EMP-001")
	})

	t.Run("idempotent mark releases lock and caches response after client disconnect", func(t *testing.T) {
		resp := attendance.AttendanceResponse{
			ID:         1,
			EmployeeID: "EMP-001",
			Date:       "2026-09-01",
			Status:     attendance.StatusPresent,
		}
		svc := &fakeAttendanceService{
			MarkFn: func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
				return resp, nil
			},
		}

		rdb, redisMock := redismock.NewClientMock()
		h := attendance.NewHandlerWithRedis(svc, rdb)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"EMP-001","date":"2026-09-01","status":"Present"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		// Client putus sebelum handler selesai; cleanup tidak boleh ikut batal
		reqCtx, cancel := context.WithCancel(req.Context())
		cancel()
		c.Request = req.WithContext(reqCtx)

		c.Set("idempotency_cache_key", "idemp:k")
		c.Set("idempotency_lock_key", "idemp:k:lock")

		payload, err := json.Marshal(resp)
		assert.NoError(t, err)
		entry, err := json.Marshal(middleware.CachedResponse{Status: http.StatusCreated, Data: payload})
		assert.NoError(t, err)

		redisMock.ExpectSet("idemp:k", entry, 24*time.Hour).SetVal("OK")
		redisMock.ExpectDel("idemp:k:lock").SetVal(1)

		h.Mark(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("validation error - unknown status literal", func(t *testing.T) {
		svc := &fakeAttendanceService{}
		h := attendance.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"EMP-001","date":"2026-09-01","status":"Late"}`
		req := httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Mark(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "status")
	})

	t.Run("validation error - empty body", func(t *testing.T) {
		svc := &fakeAttendanceService{}
		h := attendance.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Mark(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown employee returns field-attributed error", func(t *testing.T) {
		svc := &fakeAttendanceService{
			MarkFn: func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"EMP-404","date":"2026-09-01","status":"Present"}`
		req := httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Mark(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "employee_id")
	})

	t.Run("duplicate mark", func(t *testing.T) {
		svc := &fakeAttendanceService{
			MarkFn: func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrDuplicateAttendance
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"EMP-001","date":"2026-09-01","status":"Present"}`
		req := httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Mark(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeAttendanceService{
			MarkFn: func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, errors.New("database connection failed")
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"EMP-001","date":"2026-09-01","status":"Present"}`
		req := httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Mark(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAttendanceHandler_List(t *testing.T) {
	t.Run("success - forwards query filters", func(t *testing.T) {
		svc := &fakeAttendanceService{
			ListFn: func(ctx context.Context, employeeID, date string) ([]attendance.AttendanceResponse, error) {
				assert.Equal(t, "EMP-001", employeeID)
				assert.Equal(t, "2026-09-01", date)
				return []attendance.AttendanceResponse{
					{ID: 1, EmployeeID: "EMP-001", EmployeeName: "Andi", Date: "2026-09-01", Status: "Present"},
				}, nil
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/attendance/list?employee_id=EMP-001&date=2026-09-01", nil)

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Andi")
	})

	t.Run("invalid date filter", func(t *testing.T) {
		svc := &fakeAttendanceService{
			ListFn: func(ctx context.Context, employeeID, date string) ([]attendance.AttendanceResponse, error) {
				return nil, attendanceerrors.ErrInvalidDate
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/attendance/list?date=bad", nil)

		h.List(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeAttendanceService{
			ListFn: func(ctx context.Context, employeeID, date string) ([]attendance.AttendanceResponse, error) {
				return nil, errors.New("database error")
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/attendance/list", nil)

		h.List(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAttendanceHandler_Summary(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAttendanceService{
			PresentSummaryFn: func(ctx context.Context) ([]attendance.PresentSummaryResponse, error) {
				return []attendance.PresentSummaryResponse{
					{EmployeeID: "EMP-001", FullName: "Andi", TotalPresentDays: 3},
					{EmployeeID: "EMP-002", FullName: "Budi", TotalPresentDays: 1},
				}, nil
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/attendance/summary", nil)

		h.Summary(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "total_present_days")
		assert.Contains(t, w.Body.String(), "Andi")
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeAttendanceService{
			PresentSummaryFn: func(ctx context.Context) ([]attendance.PresentSummaryResponse, error) {
				return nil, errors.New("database error")
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/attendance/summary", nil)

		h.Summary(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAttendanceHandler_Export(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAttendanceService{
			ExportFn: func(ctx context.Context, employeeID, date string) (*bytes.Buffer, string, error) {
				return bytes.NewBufferString("xlsx-bytes"), "attendance_2026-09-01.xlsx", nil
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/attendance/export", nil)

		h.Export(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance_2026-09-01.xlsx")
		assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeAttendanceService{
			ExportFn: func(ctx context.Context, employeeID, date string) (*bytes.Buffer, string, error) {
				return nil, "", errors.New("export failed")
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/attendance/export", nil)

		h.Export(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
