package dashboard

import (
	"context"
	"time"

	"go-hrms/internal/attendance"
	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/employee"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	Summary(ctx context.Context, date string) (SummaryResponse, error)
}

type service struct {
	employeeRepo   employee.Repository
	attendanceRepo attendance.Repository
	group          singleflight.Group
	logger         *zap.Logger
}

func NewService(employeeRepo employee.Repository, attendanceRepo attendance.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		logger:         l,
	}
}

// Summary di-collapse lewat singleflight: burst request dashboard dengan
// parameter sama cuma menghasilkan satu putaran query ke storage.
func (s *service) Summary(ctx context.Context, date string) (SummaryResponse, error) {
	var parsed *time.Time
	if date != "" {
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			return SummaryResponse{}, attendanceerrors.ErrInvalidDate
		}
		parsed = &d
	}

	// Flight dilepas dari cancellation pemanggil pertama: pemanggil lain yang
	// ikut collapse punya context hidup dan tidak boleh mewarisi kegagalannya.
	flightCtx := context.WithoutCancel(ctx)

	key := "summary:" + date
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.buildSummary(flightCtx, parsed)
	})
	if err != nil {
		s.logger.Error("dashboard summary failed", zap.String("date", date), zap.Error(err))
		return SummaryResponse{}, err
	}
	return v.(SummaryResponse), nil
}

func (s *service) buildSummary(ctx context.Context, date *time.Time) (SummaryResponse, error) {
	totalEmployees, err := s.employeeRepo.Count(ctx)
	if err != nil {
		return SummaryResponse{}, err
	}

	totalAttendance, err := s.attendanceRepo.Count(ctx)
	if err != nil {
		return SummaryResponse{}, err
	}

	resp := SummaryResponse{
		TotalEmployees:         totalEmployees,
		TotalAttendanceRecords: totalAttendance,
	}

	if date != nil {
		presentToday, err := s.attendanceRepo.CountPresentOn(ctx, *date)
		if err != nil {
			return SummaryResponse{}, err
		}
		resp.TotalPresentToday = &presentToday
	}

	return resp, nil
}
