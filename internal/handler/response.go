package handler

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain"
)

// Response is the JSON envelope of every API answer
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse returns a successful response
func SuccessResponse(c *app.RequestContext, data interface{}) {
	c.JSON(consts.StatusOK, Response{
		Code:    "SUCCESS",
		Message: "operation successful",
		Data:    data,
	})
}

// ErrorResponse returns an error response based on error type
func ErrorResponse(c *app.RequestContext, err error) {
	status, code := ErrorStatus(err)
	message := domain.UserMessage(err)
	if code == "INTERNAL_ERROR" {
		// never expose internal details
		message = "internal server error"
	}
	c.JSON(status, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorStatus maps an error to its HTTP status and stable code. Precondition
// failures are checked before transport failures since an encoding failure
// may wrap an unreachable backend.
func ErrorStatus(err error) (int, string) {
	switch {
	case domain.IsNotSelected(err):
		return consts.StatusBadRequest, "NOT_SELECTED"
	case domain.IsInvalidParameters(err):
		return consts.StatusBadRequest, "INVALID_PARAMETERS"
	case domain.IsInvalidInput(err):
		return consts.StatusBadRequest, "INVALID_INPUT"
	case domain.IsNotFound(err):
		return consts.StatusNotFound, "NOT_FOUND"
	case domain.IsBusy(err):
		return consts.StatusConflict, "BUSY"
	case domain.IsEncodingFailed(err):
		return consts.StatusBadGateway, "ENCODING_FAILED"
	case domain.IsBackendUnavailable(err):
		return consts.StatusBadGateway, "BACKEND_UNAVAILABLE"
	default:
		return consts.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// BadRequestResponse returns a bad request response
func BadRequestResponse(c *app.RequestContext, message string) {
	c.JSON(consts.StatusBadRequest, Response{
		Code:    "BAD_REQUEST",
		Message: message,
	})
}
