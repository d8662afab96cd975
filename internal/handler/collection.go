package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/sukumar807253/sindhuja-colloction/internal/domain"
	"github.com/sukumar807253/sindhuja-colloction/internal/service"
	customError "github.com/sukumar807253/sindhuja-colloction/pkg/errors"
	"github.com/sukumar807253/sindhuja-colloction/pkg/response"
	"github.com/sukumar807253/sindhuja-colloction/pkg/utils"
)

// CollectionHandler exposes the collection tracker over HTTP
type CollectionHandler struct {
	schedules   *service.ScheduleService
	collections *service.CollectionService
	reports     *service.ReportService
	auth        *service.AuthService
	validator   *validator.Validate
}

func NewCollectionHandler(
	schedules *service.ScheduleService,
	collections *service.CollectionService,
	reports *service.ReportService,
	auth *service.AuthService,
) *CollectionHandler {
	return &CollectionHandler{
		schedules:   schedules,
		collections: collections,
		reports:     reports,
		auth:        auth,
		validator:   validator.New(),
	}
}

// Login handles POST /api/login
func (h *CollectionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "missing email or password", err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, result)
}

// Centers handles GET /api/centers
func (h *CollectionHandler) Centers(w http.ResponseWriter, r *http.Request) {
	centers, err := h.schedules.Centers(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, centers)
}

// Members handles GET /api/members/{centerId}: members of the center
// holding a credited loan
func (h *CollectionHandler) Members(w http.ResponseWriter, r *http.Request) {
	centerID, err := pathID(r, "centerId")
	if err != nil {
		response.BadRequest(w, "invalid center id", err)
		return
	}

	members, err := h.schedules.Members(r.Context(), centerID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, members)
}

// MemberWeekAmounts handles GET /api/collections/members/{centerId}:
// members with the amount and week number of their next pending week
func (h *CollectionHandler) MemberWeekAmounts(w http.ResponseWriter, r *http.Request) {
	centerID, err := pathID(r, "centerId")
	if err != nil {
		response.BadRequest(w, "invalid center id", err)
		return
	}

	views, err := h.schedules.NextWeekAmounts(r.Context(), centerID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, views)
}

// RegisterSchedule handles POST /api/collections/schedule: generates and
// stores a fresh 12-week schedule for every credited loan in the center
func (h *CollectionHandler) RegisterSchedule(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "invalid schedule request", err)
		return
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		response.BadRequest(w, "invalid start date", err)
		return
	}

	result, err := h.schedules.RegisterCenter(r.Context(), req.CenterID, startDate)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, result)
}

// PayBatch handles POST /api/collections/pay-batch
func (h *CollectionHandler) PayBatch(w http.ResponseWriter, r *http.Request) {
	var batch domain.CollectionBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&batch); err != nil {
		response.BadRequest(w, "no collection data provided", err)
		return
	}

	result, err := h.collections.ApplyBatch(r.Context(), &batch)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, result)
}

// DailyTally handles GET /api/collections/daily?date=YYYY-MM-DD,
// defaulting to today
func (h *CollectionHandler) DailyTally(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		response.BadRequest(w, "invalid date", err)
		return
	}

	tally, err := h.reports.DailyTally(r.Context(), date)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, tally)
}

// UnpaidMembers handles GET /api/collections/unpaid?date=YYYY-MM-DD,
// defaulting to today
func (h *CollectionHandler) UnpaidMembers(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		response.BadRequest(w, "invalid date", err)
		return
	}

	entries, err := h.reports.UnpaidMembers(r.Context(), date)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, entries)
}

// ClearSchedule handles DELETE /api/collections/schedule/{centerId}
func (h *CollectionHandler) ClearSchedule(w http.ResponseWriter, r *http.Request) {
	centerID, err := pathID(r, "centerId")
	if err != nil {
		response.BadRequest(w, "invalid center id", err)
		return
	}

	result, err := h.schedules.ClearCenter(r.Context(), centerID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, result)
}

// writeError maps business error codes onto HTTP statuses
func (h *CollectionHandler) writeError(w http.ResponseWriter, err error) {
	switch customError.CodeOf(err) {
	case customError.ErrCodeValidation, customError.ErrCodeDenominationMismatch:
		response.BadRequest(w, "invalid request", err)
	case customError.ErrCodeNotFound:
		response.NotFound(w, err.Error())
	case customError.ErrCodeInvalidCredentials:
		response.Unauthorized(w, err.Error())
	case customError.ErrCodeAccountBlocked:
		response.Forbidden(w, err.Error())
	default:
		response.InternalServerError(w, "operation failed", err)
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func queryDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return utils.Today(), nil
	}
	return utils.ParseDate(raw)
}
