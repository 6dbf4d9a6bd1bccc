package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var DuplicateCodeError = ErrorResponse{
	Error:          true,
	Code:           10,
	Message:        "an account or journal with this code already exists",
	HttpStatusCode: 409,
}

var NotFoundError = ErrorResponse{
	Error:          true,
	Code:           11,
	Message:        "record not found",
	HttpStatusCode: 404,
}

var UnbalancedEntryError = ErrorResponse{
	Error:          true,
	Code:           12,
	Message:        "entry is not balanced: total debit must equal total credit",
	HttpStatusCode: 400,
}

var InvalidPrefixError = ErrorResponse{
	Error:          true,
	Code:           13,
	Message:        "tier code must start with the reserved prefix (411 for clients, 401 for suppliers)",
	HttpStatusCode: 400,
}

var NoOpenFiscalYearError = ErrorResponse{
	Error:          true,
	Code:           14,
	Message:        "no open fiscal year. Open a fiscal year before posting entries",
	HttpStatusCode: 409,
}

var ConcurrentPostingConflictError = ErrorResponse{
	Error:          true,
	Code:           15,
	Message:        "another validation is running on this journal. Please retry",
	HttpStatusCode: 409,
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("RequestID", c.Response().Header().Get(echo.HeaderXRequestID))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
	} else {
		c.JSON(http.StatusInternalServerError, GeneralServerError)
	}
}
