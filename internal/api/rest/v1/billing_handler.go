package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turrs/bank-skd/internal/domain/billing"
	"github.com/turrs/bank-skd/internal/domain/catalog"
)

// VoucherHandler defines the interface for voucher endpoints
type VoucherHandler interface {
	Quote(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

type voucherHandler struct {
	voucherService billing.VoucherService
	packageService catalog.PackageService
}

// NewVoucherHandler creates a new VoucherHandler
func NewVoucherHandler(voucherService billing.VoucherService, packageService catalog.PackageService) VoucherHandler {
	return &voucherHandler{voucherService: voucherService, packageService: packageService}
}

// Quote tells the caller what a code takes off a package
func (handler *voucherHandler) Quote(ctx *gin.Context) {
	var req QuoteVoucherRequest
	if !bindJSON(ctx, &req) {
		return
	}

	pkg, err := handler.packageService.GetByID(ctx, req.PackageID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	voucher, discount, err := handler.voucherService.Quote(ctx, req.Code, actorFrom(ctx).UserID, pkg.Price)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, QuoteVoucherResponse{
		Code:        voucher.Code,
		Amount:      pkg.Price,
		Discount:    discount,
		FinalAmount: pkg.Price - discount,
	})
}

// List fetches vouchers
func (handler *voucherHandler) List(ctx *gin.Context) {
	query := &billing.VoucherQuery{Code: ctx.Query("code")}

	var ok bool
	if query.ActiveOnly, ok = queryBool(ctx, "activeOnly"); !ok {
		return
	}
	if query.Limit, ok = queryInt(ctx, "limit", 50); !ok {
		return
	}
	if query.Offset, ok = queryInt(ctx, "offset", 0); !ok {
		return
	}

	vouchers, err := handler.voucherService.List(ctx, query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if vouchers == nil {
		vouchers = []*billing.Voucher{}
	}
	ctx.JSON(http.StatusOK, vouchers)
}

// GetByID fetches one voucher
func (handler *voucherHandler) GetByID(ctx *gin.Context) {
	voucher, err := handler.voucherService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, voucher)
}

// Create adds a voucher
func (handler *voucherHandler) Create(ctx *gin.Context) {
	var req VoucherRequest
	if !bindJSON(ctx, &req) {
		return
	}

	voucher, err := handler.voucherService.Create(ctx, req.ToDomain(""))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, voucher)
}

// Update replaces a voucher
func (handler *voucherHandler) Update(ctx *gin.Context) {
	var req VoucherRequest
	if !bindJSON(ctx, &req) {
		return
	}

	voucher, err := handler.voucherService.Update(ctx, req.ToDomain(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, voucher)
}

// DeleteByID removes a voucher
func (handler *voucherHandler) DeleteByID(ctx *gin.Context) {
	if err := handler.voucherService.DeleteByID(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	noContent(ctx)
}

// PaymentHandler defines the interface for payment endpoints
type PaymentHandler interface {
	Checkout(ctx *gin.Context)
	AttachProof(ctx *gin.Context)
	Cancel(ctx *gin.Context)
	ListOwn(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Notify(ctx *gin.Context)
	List(ctx *gin.Context)
	Confirm(ctx *gin.Context)
	Fail(ctx *gin.Context)
}

type paymentHandler struct {
	paymentService billing.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService billing.PaymentService) PaymentHandler {
	return &paymentHandler{paymentService: paymentService}
}

// Checkout starts paying for a package
func (handler *paymentHandler) Checkout(ctx *gin.Context) {
	var req CheckoutRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := handler.paymentService.Checkout(ctx, actorFrom(ctx), req.PackageID, req.VoucherCode)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, CheckoutResponse{Payment: result.Payment, Checkout: result.Session})
}

// AttachProof links a transfer receipt to a pending payment
func (handler *paymentHandler) AttachProof(ctx *gin.Context) {
	var req AttachProofRequest
	if !bindJSON(ctx, &req) {
		return
	}

	payment, err := handler.paymentService.AttachProof(ctx, actorFrom(ctx), ctx.Param("id"), req.MediaID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// Cancel abandons the caller's pending payment
func (handler *paymentHandler) Cancel(ctx *gin.Context) {
	payment, err := handler.paymentService.Cancel(ctx, actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// ListOwn lists the caller's payments
func (handler *paymentHandler) ListOwn(ctx *gin.Context) {
	query, ok := paymentQueryFrom(ctx)
	if !ok {
		return
	}
	query.UserID = actorFrom(ctx).UserID

	handler.list(ctx, query)
}

// GetByID fetches one payment of the caller, any payment for admins
func (handler *paymentHandler) GetByID(ctx *gin.Context) {
	payment, err := handler.paymentService.GetByID(ctx, actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// Notify applies a signed gateway callback
func (handler *paymentHandler) Notify(ctx *gin.Context) {
	var req billing.Notification
	if !bindJSON(ctx, &req) {
		return
	}

	payment, err := handler.paymentService.HandleNotification(ctx, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// List lists every payment
func (handler *paymentHandler) List(ctx *gin.Context) {
	query, ok := paymentQueryFrom(ctx)
	if !ok {
		return
	}
	query.UserID = ctx.Query("userId")

	handler.list(ctx, query)
}

// Confirm settles a pending payment by hand
func (handler *paymentHandler) Confirm(ctx *gin.Context) {
	payment, err := handler.paymentService.Confirm(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// Fail rejects a pending payment by hand
func (handler *paymentHandler) Fail(ctx *gin.Context) {
	payment, err := handler.paymentService.Fail(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

func (handler *paymentHandler) list(ctx *gin.Context, query *billing.PaymentQuery) {
	payments, err := handler.paymentService.List(ctx, query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if payments == nil {
		payments = []*billing.Payment{}
	}
	ctx.JSON(http.StatusOK, payments)
}

func paymentQueryFrom(ctx *gin.Context) (*billing.PaymentQuery, bool) {
	query := billing.NewPaymentQuery()
	query.PackageID = ctx.Query("packageId")
	query.Status = ctx.Query("status")

	var ok bool
	if query.Limit, ok = queryInt(ctx, "limit", query.Limit); !ok {
		return nil, false
	}
	if query.Offset, ok = queryInt(ctx, "offset", 0); !ok {
		return nil, false
	}
	return query, true
}
