package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/glowdesk/salonpos-api/internal/application/service"
	"github.com/glowdesk/salonpos-api/internal/presentation/http/dto/request"
	"github.com/glowdesk/salonpos-api/internal/presentation/http/dto/response"
	"github.com/glowdesk/salonpos-api/pkg/pagination"
	"github.com/glowdesk/salonpos-api/pkg/whatsapp"
)

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billingService *service.BillingService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billingService *service.BillingService) *BillHandler {
	return &BillHandler{billingService: billingService}
}

// Create handles creating a new bill from the billing form.
func (h *BillHandler) Create(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	services := make([]service.ServiceItemInput, len(req.Services))
	for i, row := range req.Services {
		services[i] = service.ServiceItemInput{Name: row.Name, Price: row.Price, Quantity: row.Quantity}
	}

	bill, err := h.billingService.CreateBill(service.CreateBillInput{
		CustomerName:     req.CustomerName,
		CustomerWhatsApp: req.CustomerWhatsApp,
		Date:             req.Date,
		Time:             req.Time,
		Services:         services,
		Discount:         req.Discount,
		DiscountReason:   req.DiscountReason,
		PaymentMethod:    req.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// List handles listing billing history, most recent first.
func (h *BillHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result := h.billingService.ListBills(params)
	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Get handles fetching a single bill by id.
func (h *BillHandler) Get(c *gin.Context) {
	bill, err := h.billingService.GetBill(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// ClearHistory handles purging the whole billing history.
func (h *BillHandler) ClearHistory(c *gin.Context) {
	if err := h.billingService.ClearHistory(); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Billing history cleared", nil)
}

// Export handles writing the current history to a spreadsheet and
// streaming it back as a download.
func (h *BillHandler) Export(c *gin.Context) {
	filename, err := h.billingService.ExportHistory()
	if err != nil {
		response.Error(c, err)
		return
	}

	c.FileAttachment(h.billingService.ExportPath(filename), filename)
}

// Share handles building a WhatsApp share link for a bill.
func (h *BillHandler) Share(c *gin.Context) {
	recipient := whatsapp.RecipientCustomer
	switch c.DefaultQuery("recipient", "customer") {
	case "customer":
	case "owner":
		recipient = whatsapp.RecipientOwner
	default:
		response.BadRequest(c, "Recipient must be 'customer' or 'owner'")
		return
	}

	url, err := h.billingService.ShareLink(c.Param("id"), recipient)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Share link created", gin.H{"url": url})
}

// CompleteShare handles clearing the share-pending flag once the shell
// returns from the share flow.
func (h *BillHandler) CompleteShare(c *gin.Context) {
	if err := h.billingService.CompleteShare(); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Share completed", nil)
}
