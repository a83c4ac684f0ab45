package public

import (
	"errors"

	"github.com/lumistore/storefront/internal/http/response"
	"github.com/lumistore/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartLineErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be at least 1"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product is not available"},
	{target: service.ErrProductShapeInvalid, code: response.CodeBadRequest, msg: "product does not accept a variant"},
	{target: service.ErrVariantRequired, code: response.CodeBadRequest, msg: "variant is required for this product"},
	{target: service.ErrVariantNotFound, code: response.CodeBadRequest, msg: "variant not found"},
	{target: service.ErrInsufficientStock, code: response.CodeConflict, msg: "insufficient stock"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
}

var placeOrderErrorRules = []mappedHandlerError{
	{target: service.ErrAddressNotFound, code: response.CodeBadRequest, msg: "shipping address not found"},
	{target: service.ErrEmptyCart, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "a cart item is no longer available"},
	{target: service.ErrProductShapeInvalid, code: response.CodeBadRequest, msg: "a cart item is no longer orderable"},
	{target: service.ErrVariantRequired, code: response.CodeBadRequest, msg: "a cart item is no longer orderable"},
	{target: service.ErrVariantNotFound, code: response.CodeBadRequest, msg: "a cart item variant is no longer available"},
	{target: service.ErrInsufficientStock, code: response.CodeConflict, msg: "insufficient stock"},
	{target: service.ErrPlaceOrderTimeout, code: response.CodeInternal, msg: "order placement timed out, please retry"},
}

var orderQueryErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderFetchFailed, code: response.CodeInternal, msg: "failed to load order"},
}

var cancelOrderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrInvalidTransition, code: response.CodeConflict, msg: "order can no longer be cancelled"},
	{target: service.ErrOrderStatusConflict, code: response.CodeConflict, msg: "order was updated concurrently, please retry"},
	{target: service.ErrOrderUpdateFailed, code: response.CodeInternal, msg: "failed to cancel order"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrEmailExists, code: response.CodeConflict, msg: "email is already registered"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "password does not meet the policy"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid email or password"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, msg: "account is disabled"},
}

var addressErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidAddressType, code: response.CodeBadRequest, msg: "address type must be SHIPPING or BILLING"},
	{target: service.ErrAddressNotFound, code: response.CodeNotFound, msg: "address not found"},
}
