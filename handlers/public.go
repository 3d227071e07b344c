// File: handlers/public.go
package handlers

import (
	"net/http"
	"time"

	appointmentRepo "randevio/database/repository/appointment"
	businessRepo "randevio/database/repository/business"
	employeeRepo "randevio/database/repository/employee"
	identityRepo "randevio/database/repository/identity"
	"randevio/models"
	"randevio/services/availability"
	"randevio/services/booking"
	"randevio/services/identity"
	"randevio/services/subscription"
	"randevio/utils"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the slug-scoped web booking surface. Customers are
// identified by phone number; the OTP verification step in front of these
// endpoints is a separate concern.
type PublicHandler struct {
	Businesses   businessRepo.BusinessRepository
	Employees    employeeRepo.EmployeeRepository
	Appointments appointmentRepo.AppointmentRepository
	Identities   identityRepo.IdentityRepository
	Resolver     identity.Resolver
	Availability *availability.Engine
	Transactor   booking.Transactor
	Entitlements subscription.EntitlementService
}

// business resolves the slug and checks the core entitlement. A nil return
// means the response has already been written.
func (h *PublicHandler) business(c *gin.Context) *models.Business {
	biz, err := h.Businesses.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "failed to load business")
		return nil
	}
	if biz == nil {
		utils.JSONError(c, http.StatusNotFound, "not_found", "business not found")
		return nil
	}
	allowed, err := h.Entitlements.RequireCore(c.Request.Context(), biz.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "failed to check subscription")
		return nil
	}
	if !allowed {
		utils.JSONError(c, http.StatusForbidden, "subscription_required", "business subscription is not active")
		return nil
	}
	return biz
}

// ListEmployees returns the business's bookable staff.
func (h *PublicHandler) ListEmployees(c *gin.Context) {
	biz := h.business(c)
	if biz == nil {
		return
	}
	employees, err := h.Employees.GetActive(c.Request.Context(), biz.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "failed to list employees")
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// GetAvailability returns the free slot starts for an employee and date.
func (h *PublicHandler) GetAvailability(c *gin.Context) {
	biz := h.business(c)
	if biz == nil {
		return
	}
	employeeID := c.Query("employeeId")
	date := c.Query("date")
	if employeeID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "employeeId and date are required")
		return
	}
	slots, err := h.Availability.Slots(c.Request.Context(), biz.ID, employeeID, date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "failed to compute availability")
		return
	}
	if slots == nil {
		slots = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "employeeId": employeeID, "slots": slots})
}

type publicBookingInput struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Slot       string `json:"slot"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Phone      string `json:"phone"`
}

// CreateAppointment books a slot for a phone-identified web customer.
func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	biz := h.business(c)
	if biz == nil {
		return
	}

	var input publicBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	if input.EmployeeID == "" || input.Date == "" || input.Slot == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "employeeId, date and slot are required")
		return
	}

	customer, ident, ok := h.resolveCustomer(c, biz.ID, input.Phone, input.Name, input.Surname)
	if !ok {
		return
	}

	appt, err := h.Transactor.CreateAppointment(c.Request.Context(), booking.CreateAppointmentRequest{
		BusinessID: biz.ID,
		EmployeeID: input.EmployeeID,
		Date:       input.Date,
		Slot:       input.Slot,
		WaUserID:   "",
		CustomerID: customer.ID,
		Identity:   ident,
		Channel:    models.ChannelWeb,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

type publicQueueInput struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Phone      string `json:"phone"`
}

// JoinQueue appends the customer to today's queue.
func (h *PublicHandler) JoinQueue(c *gin.Context) {
	biz := h.business(c)
	if biz == nil {
		return
	}

	var input publicQueueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	customer, ident, ok := h.resolveCustomer(c, biz.ID, input.Phone, input.Name, input.Surname)
	if !ok {
		return
	}

	entry, err := h.Transactor.CreateQueueEntry(c.Request.Context(), booking.CreateQueueEntryRequest{
		BusinessID: biz.ID,
		EmployeeID: input.EmployeeID,
		CustomerID: customer.ID,
		Identity:   ident,
		Channel:    models.ChannelWeb,
	})
	if err != nil {
		if fault := booking.AsFault(err); fault != nil && fault.Code == booking.FaultAlreadyQueued && entry != nil {
			c.JSON(http.StatusOK, gin.H{"entry": entry, "alreadyQueued": true})
			return
		}
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

type publicCancelInput struct {
	Phone string `json:"phone"`
}

// CancelAppointment cancels one of the phone-identified customer's own
// upcoming appointments.
func (h *PublicHandler) CancelAppointment(c *gin.Context) {
	biz := h.business(c)
	if biz == nil {
		return
	}

	var input publicCancelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	_, ident, ok := h.resolveCustomer(c, biz.ID, input.Phone, "", "")
	if !ok {
		return
	}

	if err := h.Transactor.CancelAppointment(c.Request.Context(), biz.ID, c.Param("id"), ident); err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// ListAppointments returns the customer's upcoming appointments.
func (h *PublicHandler) ListAppointments(c *gin.Context) {
	biz := h.business(c)
	if biz == nil {
		return
	}

	_, ident, ok := h.resolveCustomer(c, biz.ID, c.Query("phone"), "", "")
	if !ok {
		return
	}

	appts, err := h.Appointments.FindUpcomingForIdentity(c.Request.Context(), biz.ID, ident, time.Now())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "failed to list appointments")
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// resolveCustomer normalizes the phone, upserts the customer record and
// resolves the cross-channel identity. Writes the error response on failure.
func (h *PublicHandler) resolveCustomer(c *gin.Context, businessID, phone, name, surname string) (*models.Customer, models.Identity, bool) {
	normalized := identity.NormalizeE164(phone)
	if normalized == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid_phone", "a valid phone number is required")
		return nil, models.Identity{}, false
	}

	customer, err := h.Identities.GetOrCreateCustomer(c.Request.Context(), businessID, normalized, name, surname)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "failed to resolve customer")
		return nil, models.Identity{}, false
	}

	ident, err := h.Resolver.ResolveCustomer(c.Request.Context(), businessID, customer)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "failed to resolve identity")
		return nil, models.Identity{}, false
	}
	return customer, ident, true
}

// writeBookingError maps transactor faults onto HTTP statuses.
func writeBookingError(c *gin.Context, err error) {
	fault := booking.AsFault(err)
	if fault == nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "booking failed")
		return
	}
	status := http.StatusConflict
	switch fault.Code {
	case booking.FaultNotFound:
		status = http.StatusNotFound
	case booking.FaultNotOwned:
		status = http.StatusForbidden
	}
	utils.JSONError(c, status, fault.Code, fault.Message)
}
