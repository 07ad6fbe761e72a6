package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/ritual-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/ritual-service/internal/app"
	"github.com/jsamuelsen/ritual-service/internal/domain"
)

// HeaderStripeSignature carries the webhook signature.
const HeaderStripeSignature = "Stripe-Signature"

// CheckoutHandler serves checkout, payment webhooks and order status.
type CheckoutHandler struct {
	service *app.CheckoutService
}

// NewCheckoutHandler creates a checkout handler.
func NewCheckoutHandler(service *app.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// CreateCheckout handles POST /api/v1/checkout.
// Stores a pending order for the quiz and returns the hosted payment page URL.
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req dto.QuizRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	sub, err := req.ToSubmission()
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	res, err := h.service.CreateCheckout(c.Request.Context(), sub)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{OrderID: res.OrderID, URL: res.URL})
}

// Webhook handles POST /api/v1/webhooks/stripe.
// The raw body is verified against the Stripe-Signature header before parsing.
// A payment that cannot be recorded answers 500 so the processor retries.
func (h *CheckoutHandler) Webhook(c *gin.Context) {
	signature := c.GetHeader(HeaderStripeSignature)
	if signature == "" {
		dto.HandleError(c, domain.NewPaymentVerificationError("missing signature header"))
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	err = h.service.HandleWebhook(c.Request.Context(), payload, signature)

	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.WebhookResponse{Received: true})
	case errors.Is(err, app.ErrRecordPayment):
		dto.RespondWithErrorCode(c, dto.ErrorCodeInternal, "Database error")
	default:
		dto.HandleError(c, err)
	}
}

// GetOrder handles GET /api/v1/orders/:id.
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	order, err := h.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}
