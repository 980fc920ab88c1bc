package handler

import (
	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	customerIDParam = "customerID"
	resourceName    = "Customer"
	internalMessage = "An unexpected error occurred."
)

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

// getCustomerIDFromURL reports ok=false for ids that cannot name a stored
// customer. Callers treat those the same as a missing record.
func getCustomerIDFromURL(r *http.Request) (id int64, raw string, ok bool) {
	raw = chi.URLParam(r, customerIDParam)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, raw, false
	}
	return id, raw, true
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("body of request contained bad or no data")
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"message":"Internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message := http.StatusInternalServerError, internalMessage
	var notFoundErr *apperrors.NotFoundError
	var validationErr *apperrors.ValidationError

	switch {
	case errors.As(err, &notFoundErr):
		status, message = http.StatusNotFound, notFoundErr.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.As(err, &validationErr):
		status, message = http.StatusBadRequest, "Invalid Customer: "+validationErr.Error()
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	respondJSON(w, status, dto.ErrorResponse{Message: message})
}

func (h *CustomerHandler) respondNotFound(w http.ResponseWriter, r *http.Request, raw string) {
	h.logger.WarnContext(r.Context(), "Customer ID does not name a stored customer", slog.String("customerID", raw))
	respondError(w, apperrors.NewNotFoundError(resourceName, raw))
}

func (h *CustomerHandler) logServiceError(r *http.Request, msg string, err error) {
	level := slog.LevelError
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
		level = slog.LevelWarn
	}
	h.logger.Log(r.Context(), level, msg, slog.Any("error", err))
}

// CreateCustomer handles POST /customers
// @Summary Create a new customer
// @Description Creates a customer. Only the name is required; state defaults to true and also accepts "true"/"false" text.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer to create"
// @Success 201 {object} dto.CustomerResponse "Customer successfully created"
// @Header 201 {string} Location "URL of the new customer"
// @Failure 400 {object} dto.ErrorResponse "The posted data was not valid"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create customer request")

	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateCustomer(r.Context(), req.ToPayload())
	if err != nil {
		h.logServiceError(r, "Service failed to create customer", err)
		respondError(w, err)
		return
	}

	location := strings.TrimSuffix(r.URL.Path, "/") + "/" + strconv.FormatInt(created.ID, 10)
	w.Header().Set("Location", location)
	h.logger.InfoContext(r.Context(), "Customer created successfully", slog.Int64("customerID", created.ID))
	respondJSON(w, http.StatusCreated, dto.NewCustomerResponse(created))
}

// GetCustomer handles GET /customers/{customerID}
// @Summary Retrieve a customer
// @Description Returns the customer with the given id.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.CustomerResponse "Customer details retrieved"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [get]
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, raw, ok := getCustomerIDFromURL(r)
	if !ok {
		h.respondNotFound(w, r, raw)
		return
	}

	found, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.logServiceError(r, "Service failed to get customer", err)
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer retrieved successfully", slog.Int64("customerID", customerID))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(found))
}

// UpdateCustomer handles PUT /customers/{customerID}
// @Summary Replace a customer
// @Description Replaces every field of the customer with the request body. The id is kept.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param request body dto.CustomerRequest true "Replacement customer"
// @Success 200 {object} dto.CustomerResponse "Customer updated"
// @Failure 400 {object} dto.ErrorResponse "The posted data was not valid"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [put]
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, raw, ok := getCustomerIDFromURL(r)
	if !ok {
		h.respondNotFound(w, r, raw)
		return
	}

	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	updated, err := h.service.UpdateCustomer(r.Context(), customerID, req.ToPayload())
	if err != nil {
		h.logServiceError(r, "Service failed to update customer", err)
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer updated successfully", slog.Int64("customerID", customerID))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(updated))
}

// DeleteCustomer handles DELETE /customers/{customerID}
// @Summary Delete a customer
// @Description Removes the customer. Deleting an unknown id also succeeds.
// @Tags Customers
// @Param customerID path int true "Customer ID"
// @Success 204 "Customer deleted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [delete]
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, raw, ok := getCustomerIDFromURL(r)
	if !ok {
		h.logger.InfoContext(r.Context(), "Delete requested for unknown customer ID", slog.String("customerID", raw))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		h.logServiceError(r, "Service failed to delete customer", err)
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer deleted", slog.Int64("customerID", customerID))
	w.WriteHeader(http.StatusNoContent)
}

// SuspendCustomer handles PUT /customers/{customerID}/suspend
// @Summary Suspend a customer
// @Description Sets the customer state to false. Suspending a suspended customer succeeds without change.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.CustomerResponse "Customer suspended"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/suspend [put]
func (h *CustomerHandler) SuspendCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, raw, ok := getCustomerIDFromURL(r)
	if !ok {
		h.respondNotFound(w, r, raw)
		return
	}

	suspended, err := h.service.SuspendCustomer(r.Context(), customerID)
	if err != nil {
		h.logServiceError(r, "Service failed to suspend customer", err)
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer has been suspended", slog.Int64("customerID", customerID))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(suspended))
}

// ListCustomers handles GET /customers
// @Summary List customers
// @Description Returns every customer matching all supplied filters. Empty filters are ignored; a state other than "true" matches suspended customers.
// @Tags Customers
// @Produce json
// @Param name query string false "Exact name"
// @Param email query string false "Exact email"
// @Param phone_number query string false "Exact phone number"
// @Param address query string false "Exact address"
// @Param state query string false "true for active customers" Example(true)
// @Success 200 {array} dto.CustomerResponse "Matching customers"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	filter := customer.ParseFilter(r.URL.Query())

	customers, err := h.service.ListCustomers(r.Context(), filter)
	if err != nil {
		h.logServiceError(r, "Service failed to list customers", err)
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customers returned", slog.Int("count", len(customers)))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponses(customers))
}

// ExportCustomers handles GET /customers/export
// @Summary Export customers as a spreadsheet
// @Description Same filters as the list endpoint, rendered as an XLSX workbook.
// @Tags Customers
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param name query string false "Exact name"
// @Param email query string false "Exact email"
// @Param phone_number query string false "Exact phone number"
// @Param address query string false "Exact address"
// @Param state query string false "true for active customers"
// @Success 200 {file} file "customers.xlsx"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/export [get]
func (h *CustomerHandler) ExportCustomers(w http.ResponseWriter, r *http.Request) {
	filter := customer.ParseFilter(r.URL.Query())

	customers, err := h.service.ListCustomers(r.Context(), filter)
	if err != nil {
		h.logServiceError(r, "Service failed to list customers for export", err)
		respondError(w, err)
		return
	}

	workbook, err := buildCustomerWorkbook(customers)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to build customer workbook", slog.Any("error", err))
		respondError(w, err)
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="customers.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if err := workbook.Write(w); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to stream customer workbook", slog.Any("error", err))
		return
	}
	h.logger.InfoContext(r.Context(), "Customers exported", slog.Int("count", len(customers)))
}
