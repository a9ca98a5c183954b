package attendance

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/employee"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	List(ctx context.Context, employeeID, date string) ([]AttendanceResponse, error)
	PresentSummary(ctx context.Context) ([]PresentSummaryResponse, error)
	Export(ctx context.Context, employeeID, date string) (*bytes.Buffer, string, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	outbox       kafka.OutboxRepository
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, employeeRepo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		outbox:       outboxRepo,
		logger:       l,
	}
}

// Mark mencatat satu attendance per employee per tanggal. Pre-check duplikat
// bisa kalah race dengan request kembar; uq_attendances_employee_date yang
// menjadi penentu, dan errornya dipetakan balik ke ErrDuplicateAttendance.
func (s *service) Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("mark attendance requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		s.logger.Warn("mark attendance invalid date",
			zap.String("date", req.Date),
			zap.Error(err),
		)
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}

	emp, err := s.employeeRepo.FindByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		s.logger.Error("mark attendance resolve employee failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	marked, err := s.repo.ExistsByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		s.logger.Error("mark attendance duplicate check failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if marked {
		return AttendanceResponse{}, attendanceerrors.ErrDuplicateAttendance
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark attendance begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row := &Attendance{
		EmployeeID: emp.ID,
		Date:       date,
		Status:     req.Status,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Warn("mark attendance persist failed",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.AttendanceMarkedEvent{
			EventType:  "attendance_marked",
			RequestID:  rid,
			EmployeeID: emp.EmployeeID,
			Date:       req.Date,
			Status:     req.Status,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return AttendanceResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "attendance",
			AggregateID:   emp.EmployeeID,
			EventType:     event.EventType,
			Topic:         events.AttendanceLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("mark attendance outbox persist failed", zap.Error(err))
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("mark attendance commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("mark attendance success",
		zap.String("request_id", rid),
		zap.String("employee_id", emp.EmployeeID),
		zap.String("date", req.Date),
	)

	row.Employee = &EmployeeRef{ID: emp.ID, EmployeeID: emp.EmployeeID, FullName: emp.FullName}
	return mapToResponse(*row), nil
}

func (s *service) List(ctx context.Context, employeeID, date string) ([]AttendanceResponse, error) {
	filter, err := buildFilter(employeeID, date)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAllFiltered(ctx, filter)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) PresentSummary(ctx context.Context) ([]PresentSummaryResponse, error) {
	rows, err := s.repo.PresentSummary(ctx)
	if err != nil {
		s.logger.Error("present summary failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]PresentSummaryResponse, len(rows))
	for i, r := range rows {
		res[i] = PresentSummaryResponse{
			EmployeeID:       r.EmployeeID,
			FullName:         r.FullName,
			TotalPresentDays: r.TotalPresentDays,
		}
	}
	return res, nil
}

// Export menulis hasil listing (filter sama dengan List) ke workbook .xlsx.
func (s *service) Export(ctx context.Context, employeeID, date string) (*bytes.Buffer, string, error) {
	filter, err := buildFilter(employeeID, date)
	if err != nil {
		return nil, "", err
	}

	rows, err := s.repo.FindAllFiltered(ctx, filter)
	if err != nil {
		s.logger.Error("export attendance query failed", zap.Error(err))
		return nil, "", mapRepositoryError(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Employee ID", "Employee Name", "Date", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		resp := mapToResponse(row)
		values := []any{resp.EmployeeID, resp.EmployeeName, resp.Date, resp.Status}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("export attendance write failed", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", time.Now().UTC().Format(dateLayout))
	return buf, filename, nil
}

func buildFilter(employeeID, date string) (Filter, error) {
	filter := Filter{EmployeeID: employeeID}
	if date != "" {
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			return Filter{}, attendanceerrors.ErrInvalidDate
		}
		filter.Date = &d
	}
	return filter, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:        a.ID,
		Date:      a.Date.Format(dateLayout),
		Status:    a.Status,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if a.Employee != nil {
		resp.EmployeeID = a.Employee.EmployeeID
		resp.EmployeeName = a.Employee.FullName
	}
	return resp
}
