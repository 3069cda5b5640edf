package handler

import (
	"github.com/catering/gstbill/internal/application/invoicing"
	"github.com/catering/gstbill/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *invoicing.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *invoicing.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create godoc
// @ID           createInvoice
//
//	@Summary		Commit an invoice
//	@Description	Validates the draft, recomputes every line, learns new item descriptions and stores the invoice under the next free bill number. A repeated Idempotency-Key replays the stored invoice with 200.
//	@Tags			invoices
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string							false	"Client token guarding against double submission"
//	@Param			request			body		invoicing.CreateInvoiceRequest	true	"Invoice draft"
//	@Success		201				{object}	APIResponse[invoicing.InvoiceResponse]
//	@Success		200				{object}	APIResponse[invoicing.InvoiceResponse]
//	@Failure		400				{object}	ErrorResponse
//	@Failure		409				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Router			/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req invoicing.CreateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	key := c.GetHeader(middleware.IdempotencyKeyHeader)
	if len(key) > middleware.MaxRequestIDLength {
		h.BadRequest(c, "Idempotency-Key is too long")
		return
	}

	inv, replayed, err := h.invoiceService.Create(c.Request.Context(), req, key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if replayed {
		h.Success(c, inv)
		return
	}
	h.Created(c, inv)
}

// Preview godoc
// @ID           previewInvoice
//
//	@Summary		Compute a draft
//	@Description	Runs the draft reducer over the submitted customer and items and returns the computed lines and totals without storing anything
//	@Tags			invoices
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invoicing.CreateInvoiceRequest	true	"Invoice draft"
//	@Success		200		{object}	APIResponse[invoicing.DraftResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Router			/invoices/preview [post]
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var req invoicing.CreateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	draft, err := h.invoiceService.Preview(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, draft)
}

// List godoc
// @ID           listInvoices
//
//	@Summary		List invoices
//	@Description	Lists stored invoices, newest first unless sort_by is given
//	@Tags			invoices
//	@Produce		json
//	@Param			billNo			query		string	false	"Exact bill number"
//	@Param			customerName	query		string	false	"Customer name substring (case-insensitive)"
//	@Param			gstNo			query		string	false	"Exact customer GST number"
//	@Param			from			query		string	false	"Earliest date (YYYY-MM-DD or RFC 3339)"
//	@Param			to				query		string	false	"Latest date (YYYY-MM-DD or RFC 3339)"
//	@Param			page			query		int		false	"Page number"		default(1)
//	@Param			page_size		query		int		false	"Page size"			default(20)	maximum(100)
//	@Param			sort_by			query		string	false	"Sort field"		Enums(date, bill_seq, customer_name, total, created_at, updated_at)
//	@Param			sort_order		query		string	false	"Sort direction"	Enums(asc, desc)
//	@Success		200				{object}	APIResponse[[]invoicing.InvoiceResponse]
//	@Failure		400				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Router			/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var query invoicing.ListInvoicesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	page, err := h.invoiceService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get godoc
// @ID           getInvoiceById
//
//	@Summary		Get invoice by ID
//	@Tags			invoices
//	@Produce		json
//	@Param			id	path		string	true	"Invoice ID"	format(uuid)
//	@Success		200	{object}	APIResponse[invoicing.InvoiceResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, inv)
}

// GetByBillNo godoc
// @ID           getInvoiceByBillNo
//
//	@Summary		Get invoice by bill number
//	@Tags			invoices
//	@Produce		json
//	@Param			billNo	path		string	true	"Bill number"
//	@Success		200		{object}	APIResponse[invoicing.InvoiceResponse]
//	@Failure		404		{object}	ErrorResponse
//	@Router			/invoices/bill/{billNo} [get]
func (h *InvoiceHandler) GetByBillNo(c *gin.Context) {
	inv, err := h.invoiceService.GetByBillNo(c.Request.Context(), c.Param("billNo"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, inv)
}

// Update godoc
// @ID           updateInvoice
//
//	@Summary		Replace an invoice
//	@Description	Replaces bill number, date, customer and items. Line totals are re-derived; the item catalog is not touched.
//	@Tags			invoices
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Invoice ID"	format(uuid)
//	@Param			request	body		invoicing.UpdateInvoiceRequest	true	"Replacement invoice"
//	@Success		200		{object}	APIResponse[invoicing.InvoiceResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req invoicing.UpdateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	inv, err := h.invoiceService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, inv)
}

// Delete godoc
// @ID           deleteInvoice
//
//	@Summary		Delete an invoice
//	@Description	Deletes the invoice and returns it. Its bill number is not handed out again.
//	@Tags			invoices
//	@Produce		json
//	@Param			id	path		string	true	"Invoice ID"	format(uuid)
//	@Success		200	{object}	APIResponse[invoicing.InvoiceResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, inv)
}

// NextBillNumber godoc
// @ID           getNextBillNumber
//
//	@Summary		Peek at the next bill number
//	@Description	Returns the number the next commit would most likely receive. Nothing is reserved, so the committed number may differ.
//	@Tags			invoices
//	@Produce		json
//	@Success		200	{object}	APIResponse[invoicing.NextBillNumberResponse]
//	@Failure		500	{object}	ErrorResponse
//	@Router			/next-bill-number [get]
func (h *InvoiceHandler) NextBillNumber(c *gin.Context) {
	resp, err := h.invoiceService.NextBillNumber(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
