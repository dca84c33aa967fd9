package leaverequest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leave/internal/leaverequest"
	leaveerrors "go-leave/internal/leaverequest/errors"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Message       string          `json:"message"`
	Data          json.RawMessage `json:"data"`
	Counts        json.RawMessage `json:"counts"`
	Error         *apiError       `json:"error"`
	CorrelationID string          `json:"correlation_id"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	submitFn        func(ctx context.Context, employeeID uint, req leaverequest.SubmitLeaveRequest) (leaverequest.LeaveRequestResponse, error)
	getAllFn        func(ctx context.Context, managerID *uint, months *int) ([]leaverequest.LeaveRequestResponse, leaverequest.StatusCounts, error)
	getByEmployeeFn func(ctx context.Context, employeeID uint) ([]leaverequest.LeaveRequestResponse, error)
	getByIDFn       func(ctx context.Context, id uint) (leaverequest.LeaveRequestResponse, error)
	updateStatusFn  func(ctx context.Context, id uint, status string, actorID uint) (leaverequest.LeaveRequestResponse, error)
	dashboardFn     func(ctx context.Context, employeeID uint) (leaverequest.DashboardResponse, error)
	cancelFn        func(ctx context.Context, id, employeeID uint) error
}

func (f *fakeLeaveService) Submit(ctx context.Context, employeeID uint, req leaverequest.SubmitLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.submitFn(ctx, employeeID, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, managerID *uint, months *int) ([]leaverequest.LeaveRequestResponse, leaverequest.StatusCounts, error) {
	return f.getAllFn(ctx, managerID, months)
}
func (f *fakeLeaveService) GetByEmployee(ctx context.Context, employeeID uint) ([]leaverequest.LeaveRequestResponse, error) {
	return f.getByEmployeeFn(ctx, employeeID)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id uint) (leaverequest.LeaveRequestResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeLeaveService) UpdateStatus(ctx context.Context, id uint, status string, actorID uint) (leaverequest.LeaveRequestResponse, error) {
	return f.updateStatusFn(ctx, id, status, actorID)
}
func (f *fakeLeaveService) Dashboard(ctx context.Context, employeeID uint) (leaverequest.DashboardResponse, error) {
	return f.dashboardFn(ctx, employeeID)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, id, employeeID uint) error {
	return f.cancelFn(ctx, id, employeeID)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestLeaveRequestHandler_GetByID(t *testing.T) {
	managerID := uint(3)
	record := leaverequest.LeaveRequestResponse{
		ID:         10,
		EmployeeID: 4,
		ManagerID:  &managerID,
		Status:     leaverequest.StatusPending,
	}

	t.Run("employee fetching a foreign request is forbidden", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, id uint) (leaverequest.LeaveRequestResponse, error) {
				return record, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaverequest/10", nil)
		c.Params = gin.Params{{Key: "id", Value: "10"}}
		c.Set("role", rbac.RoleEmployee)
		c.Set("user_id", uint(99))

		h.GetByID(c)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner fetches their own request", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, id uint) (leaverequest.LeaveRequestResponse, error) {
				return record, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaverequest/10", nil)
		c.Params = gin.Params{{Key: "id", Value: "10"}}
		c.Set("role", rbac.RoleEmployee)
		c.Set("user_id", uint(4))

		h.GetByID(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("foreign manager is forbidden, record manager succeeds", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, id uint) (leaverequest.LeaveRequestResponse, error) {
				return record, nil
			},
		}
		h := leaverequest.NewHandler(svc)

		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaverequest/10", nil)
		c.Params = gin.Params{{Key: "id", Value: "10"}}
		c.Set("role", rbac.RoleManager)
		c.Set("user_id", uint(77))
		h.GetByID(c)
		assert.Equal(t, http.StatusForbidden, w.Code)

		c, w = newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaverequest/10", nil)
		c.Params = gin.Params{{Key: "id", Value: "10"}}
		c.Set("role", rbac.RoleManager)
		c.Set("user_id", managerID)
		h.GetByID(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing record is 404 before any scope decision", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, id uint) (leaverequest.LeaveRequestResponse, error) {
				return leaverequest.LeaveRequestResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}

		h := leaverequest.NewHandler(svc)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaverequest/404", nil)
		c.Params = gin.Params{{Key: "id", Value: "404"}}
		c.Set("role", rbac.RoleEmployee)
		c.Set("user_id", uint(4))

		h.GetByID(c)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLeaveRequestHandler_UpdateStatus(t *testing.T) {
	managerID := uint(3)
	record := leaverequest.LeaveRequestResponse{
		ID:         10,
		EmployeeID: 4,
		ManagerID:  &managerID,
		Status:     leaverequest.StatusPending,
	}

	t.Run("foreign manager receives forbidden and the decision never runs", func(t *testing.T) {
		decided := false
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, id uint) (leaverequest.LeaveRequestResponse, error) {
				return record, nil
			},
			updateStatusFn: func(ctx context.Context, id uint, status string, actorID uint) (leaverequest.LeaveRequestResponse, error) {
				decided = true
				return record, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaverequest/10/UpdateStatus",
			strings.NewReader(`{"status":"Approved"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "10"}}
		c.Set("role", rbac.RoleManager)
		c.Set("user_id", uint(77))

		h.UpdateStatus(c)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, decided)
	})

	t.Run("record manager approves", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, id uint) (leaverequest.LeaveRequestResponse, error) {
				return record, nil
			},
			updateStatusFn: func(ctx context.Context, id uint, status string, actorID uint) (leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, uint(10), id)
				assert.Equal(t, leaverequest.StatusApproved, status)
				assert.Equal(t, managerID, actorID)
				approved := record
				approved.Status = leaverequest.StatusApproved
				return approved, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaverequest/10/UpdateStatus",
			strings.NewReader(`{"status":"Approved"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "10"}}
		c.Set("role", rbac.RoleManager)
		c.Set("user_id", managerID)

		h.UpdateStatus(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin skips the report-scope pre-check", func(t *testing.T) {
		fetched := false
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, id uint) (leaverequest.LeaveRequestResponse, error) {
				fetched = true
				return record, nil
			},
			updateStatusFn: func(ctx context.Context, id uint, status string, actorID uint) (leaverequest.LeaveRequestResponse, error) {
				return record, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaverequest/10/UpdateStatus",
			strings.NewReader(`{"status":"Rejected"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "10"}}
		c.Set("role", rbac.RoleAdmin)
		c.Set("user_id", uint(1))

		h.UpdateStatus(c)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, fetched)
	})
}

func TestLeaveRequestHandler_GetAll(t *testing.T) {
	t.Run("admin results are grouped by department with counts", func(t *testing.T) {
		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context, managerID *uint, months *int) ([]leaverequest.LeaveRequestResponse, leaverequest.StatusCounts, error) {
				assert.Nil(t, managerID)
				assert.Nil(t, months)
				return []leaverequest.LeaveRequestResponse{
						{ID: 1, Department: "Engineering", Status: leaverequest.StatusPending},
						{ID: 2, Department: "Finance", Status: leaverequest.StatusApproved},
						{ID: 3, Department: "Engineering", Status: leaverequest.StatusApproved},
					}, leaverequest.StatusCounts{Approved: 2, Pending: 1},
					nil
			},
		}

		h := leaverequest.NewHandler(svc)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaverequest/GetAll", nil)
		c.Set("role", rbac.RoleAdmin)
		c.Set("user_id", uint(1))

		h.GetAll(c)
		assert.Equal(t, http.StatusOK, w.Code)

		env := decodeEnvelope(t, w.Body.Bytes())
		var grouped map[string][]leaverequest.LeaveRequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &grouped))
		assert.Len(t, grouped["Engineering"], 2)
		assert.Len(t, grouped["Finance"], 1)

		var counts leaverequest.StatusCounts
		assert.NoError(t, json.Unmarshal(env.Counts, &counts))
		assert.EqualValues(t, 2, counts.Approved)
	})

	t.Run("manager scope and months window are forwarded", func(t *testing.T) {
		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context, managerID *uint, months *int) ([]leaverequest.LeaveRequestResponse, leaverequest.StatusCounts, error) {
				assert.NotNil(t, managerID)
				assert.Equal(t, uint(3), *managerID)
				assert.NotNil(t, months)
				assert.Equal(t, 3, *months)
				return nil, leaverequest.StatusCounts{}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaverequest/GetAll?months=3", nil)
		c.Set("role", rbac.RoleManager)
		c.Set("user_id", uint(3))

		h.GetAll(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-numeric months is a validation failure", func(t *testing.T) {
		h := leaverequest.NewHandler(&fakeLeaveService{})
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaverequest/GetAll?months=abc", nil)
		c.Set("role", rbac.RoleAdmin)
		c.Set("user_id", uint(1))

		h.GetAll(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveRequestHandler_Submit(t *testing.T) {
	t.Run("identity comes from the token, not the body", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, employeeID uint, req leaverequest.SubmitLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, uint(4), employeeID)
				assert.Equal(t, "2026-03-10", req.StartDate)
				return leaverequest.LeaveRequestResponse{ID: 10, EmployeeID: employeeID, Status: leaverequest.StatusPending}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		c, w := newTestContext(t)
		body := `{"startDate":"2026-03-10","endDate":"2026-03-12","leaveTypeId":1,"remarks":"Family"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaverequest/request", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("role", rbac.RoleEmployee)
		c.Set("user_id", uint(4))

		h.Submit(c)
		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "Leave request submitted successfully", env.Message)
	})

	t.Run("missing dates are a validation failure", func(t *testing.T) {
		h := leaverequest.NewHandler(&fakeLeaveService{})
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaverequest/request", strings.NewReader(`{"leaveTypeId":1}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uint(4))

		h.Submit(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
