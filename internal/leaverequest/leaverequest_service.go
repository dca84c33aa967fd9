package leaverequest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leaverequest/errors"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/user"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	dashboardCacheTTL = 5 * time.Minute
	dateLayout        = "2006-01-02"
)

// EmployeeDirectory is the slice of the user store the dashboard needs.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id uint) (*user.User, error)
}

type Service interface {
	Submit(ctx context.Context, employeeID uint, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	GetAll(ctx context.Context, managerID *uint, months *int) ([]LeaveRequestResponse, StatusCounts, error)
	GetByEmployee(ctx context.Context, employeeID uint) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, id uint) (LeaveRequestResponse, error)
	UpdateStatus(ctx context.Context, id uint, status string, actorID uint) (LeaveRequestResponse, error)
	Dashboard(ctx context.Context, employeeID uint) (DashboardResponse, error)
	Cancel(ctx context.Context, id, employeeID uint) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	users  EmployeeDirectory
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     singleflight.Group
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	users EmployeeDirectory,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{db: db, repo: repo, users: users, outbox: outbox, rdb: rdb, logger: l}
}

func (s *service) Submit(ctx context.Context, employeeID uint, req SubmitLeaveRequest) (LeaveRequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("submit leave requested",
		zap.Uint("employee_id", employeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Uint("leave_type_id", req.LeaveTypeID),
	)

	startDate, endDate, err := validateSubmitRequest(req)
	if err != nil {
		log.Warn("submit leave validation failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	l := &LeaveRequest{
		EmployeeID:    employeeID,
		LeaveTypeID:   req.LeaveTypeID,
		StartDate:     startDate,
		EndDate:       endDate,
		Remarks:       req.Remarks,
		Status:        StatusPending,
		DateRequested: time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
			return err
		}
		event := events.LeaveRequestedEvent{
			EventType:      "leave.requested",
			LeaveRequestID: l.ID,
			EmployeeID:     employeeID,
			LeaveTypeID:    req.LeaveTypeID,
			StartDate:      req.StartDate,
			EndDate:        req.EndDate,
			OccurredAt:     time.Now().UTC(),
		}
		return s.stageEvent(ctx, tx, events.LeaveRequestedTopic, event.EventType, l.ID, event)
	})
	if err != nil {
		log.Error("submit leave persist failed", zap.Error(err))
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	s.invalidateDashboard(ctx, employeeID)
	log.Info("submit leave success",
		zap.Uint("leave_id", l.ID),
		zap.Uint("employee_id", employeeID),
	)

	record, err := s.repo.FindRecordByID(ctx, l.ID)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	return mapRecordToResponse(*record), nil
}

func (s *service) GetAll(ctx context.Context, managerID *uint, months *int) ([]LeaveRequestResponse, StatusCounts, error) {
	var (
		records []LeaveRequestRecord
		counts  StatusCounts
	)

	// List and tally run over the same predicate; both must succeed.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.repo.FindAll(gctx, managerID, months)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.repo.CountByStatus(gctx, managerID, months)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, StatusCounts{}, mapRepositoryError(err)
	}

	return mapRecordsToResponses(records), counts, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID uint) ([]LeaveRequestResponse, error) {
	records, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapRecordsToResponses(records), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (LeaveRequestResponse, error) {
	record, err := s.repo.FindRecordByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	return mapRecordToResponse(*record), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uint, status string, actorID uint) (LeaveRequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update leave status requested",
		zap.Uint("leave_id", id),
		zap.String("target_status", status),
		zap.Uint("actor_id", actorID),
	)

	if status != StatusApproved && status != StatusRejected {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidStatus
	}

	var employeeID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		current, err := qtx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current.IsTerminal() {
			return leaveerrors.ErrAlreadyFinalized
		}
		employeeID = current.EmployeeID

		rows, err := qtx.UpdateStatus(ctx, id, status)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Lost the race against another decision on the same row.
			return leaveerrors.ErrAlreadyFinalized
		}

		event := events.LeaveStatusChangedEvent{
			EventType:      "leave.status_changed",
			LeaveRequestID: id,
			EmployeeID:     current.EmployeeID,
			OldStatus:      current.Status,
			NewStatus:      status,
			ChangedBy:      actorID,
			OccurredAt:     time.Now().UTC(),
		}
		return s.stageEvent(ctx, tx, events.LeaveStatusChangedTopic, event.EventType, id, event)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveNotFound
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			log.Warn("update leave status rejected",
				zap.Uint("leave_id", id),
				zap.String("target_status", status),
				zap.Error(err),
			)
			return LeaveRequestResponse{}, err
		}
		log.Error("update leave status persist failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.invalidateDashboard(ctx, employeeID)
	log.Info("update leave status success",
		zap.Uint("leave_id", id),
		zap.String("status", status),
		zap.Uint("actor_id", actorID),
	)

	record, err := s.repo.FindRecordByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	return mapRecordToResponse(*record), nil
}

func (s *service) Cancel(ctx context.Context, id, employeeID uint) error {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("cancel leave requested", zap.Uint("leave_id", id), zap.Uint("employee_id", employeeID))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		current, err := qtx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current.EmployeeID != employeeID {
			return leaveerrors.ErrNotOwner
		}
		if current.IsTerminal() {
			return leaveerrors.ErrAlreadyFinalized
		}

		rows, err := qtx.CancelByOwner(ctx, id, employeeID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return leaveerrors.ErrAlreadyFinalized
		}

		event := events.LeaveStatusChangedEvent{
			EventType:      "leave.status_changed",
			LeaveRequestID: id,
			EmployeeID:     employeeID,
			OldStatus:      current.Status,
			NewStatus:      StatusCancelled,
			ChangedBy:      employeeID,
			OccurredAt:     time.Now().UTC(),
		}
		return s.stageEvent(ctx, tx, events.LeaveStatusChangedTopic, event.EventType, id, event)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		log.Error("cancel leave persist failed", zap.Uint("leave_id", id), zap.Error(err))
		return err
	}

	s.invalidateDashboard(ctx, employeeID)
	log.Info("cancel leave success", zap.Uint("leave_id", id), zap.Uint("employee_id", employeeID))
	return nil
}

func (s *service) Dashboard(ctx context.Context, employeeID uint) (DashboardResponse, error) {
	key := dashboardCacheKey(employeeID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var resp DashboardResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("dashboard cache read failed", zap.Uint("employee_id", employeeID), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		resp, err := s.computeDashboard(ctx, employeeID)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, key, payload, dashboardCacheTTL).Err(); err != nil {
					s.logger.Warn("dashboard cache write failed", zap.Uint("employee_id", employeeID), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return DashboardResponse{}, err
	}
	return v.(DashboardResponse), nil
}

func (s *service) computeDashboard(ctx context.Context, employeeID uint) (DashboardResponse, error) {
	var (
		profile *user.User
		stats   StatusCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.users.FindByID(gctx, employeeID)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.repo.StatsByEmployee(gctx, employeeID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DashboardResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		return DashboardResponse{}, mapRepositoryError(err)
	}

	resp := DashboardResponse{
		Profile: DashboardProfile{
			EmployeeID: profile.ID,
			FullName:   profile.FullName,
			Email:      profile.Email,
			Department: profile.Department,
			Role:       profile.Role,
			DateJoined: profile.DateJoined.Format(dateLayout),
		},
		Stats: stats,
	}
	if profile.Manager != nil {
		name := profile.Manager.FullName
		resp.Profile.ManagerName = &name
	}
	return resp, nil
}

func (s *service) stageEvent(ctx context.Context, tx *gorm.DB, topic, eventType string, aggregateID uint, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   strconv.FormatUint(uint64(aggregateID), 10),
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateDashboard(ctx context.Context, employeeID uint) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, dashboardCacheKey(employeeID)).Err(); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Uint("employee_id", employeeID), zap.Error(err))
	}
}

func dashboardCacheKey(employeeID uint) string {
	return fmt.Sprintf("leave:dashboard:%d", employeeID)
}

func validateSubmitRequest(req SubmitLeaveRequest) (time.Time, time.Time, error) {
	if req.LeaveTypeID == 0 {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveType
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidFieldWithReason("startDate", "must be in YYYY-MM-DD format")
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidFieldWithReason("endDate", "must be in YYYY-MM-DD format")
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}

func mapRecordToResponse(r LeaveRequestRecord) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		ManagerID:     r.ManagerID,
		ManagerName:   r.ManagerName,
		Department:    r.Department,
		LeaveTypeID:   r.LeaveTypeID,
		LeaveTypeName: r.LeaveTypeName,
		StartDate:     r.StartDate.Format(dateLayout),
		EndDate:       r.EndDate.Format(dateLayout),
		Remarks:       r.Remarks,
		Status:        r.Status,
		DateRequested: r.DateRequested.Format("2006-01-02 15:04:05"),
	}
}

func mapRecordsToResponses(records []LeaveRequestRecord) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(records))
	for i, r := range records {
		resp[i] = mapRecordToResponse(r)
	}
	return resp
}
