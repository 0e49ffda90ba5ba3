package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorPage is the data handed to error.html
type ErrorPage struct {
	ErrorTitle   string
	ErrorMessage string
}

// errorView mirrors the page data shape the layout expects
type errorView struct {
	Title       string
	ActiveNav   string
	Breadcrumbs []struct{ Title, URL string }
	Data        ErrorPage
}

// CustomErrorHandler renders HTTP errors as an HTML page
func CustomErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		errorTitle := "Internal Server Error"
		errorMessage := ""

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if msg, ok := he.Message.(string); ok && msg != "" {
				errorMessage = msg
			}

			switch code {
			case http.StatusNotFound:
				errorTitle = "Page Not Found"
				if errorMessage == "" || errorMessage == http.StatusText(code) {
					errorMessage = "The page you're looking for doesn't exist."
				}
			case http.StatusBadRequest:
				errorTitle = "Bad Request"
				if errorMessage == "" {
					errorMessage = "The request could not be processed."
				}
			case http.StatusTooManyRequests:
				errorTitle = "Too Many Requests"
				errorMessage = "You have sent too many requests. Please wait a minute and try again."
			case http.StatusMethodNotAllowed:
				errorTitle = "Method Not Allowed"
			default:
				if code < 500 {
					errorTitle = http.StatusText(code)
				}
			}
		}
		if code >= 500 || errorMessage == "" {
			errorMessage = "Something went wrong. Please try again later."
		}

		if code >= 500 {
			logger.Error("Request failed", zap.Error(err), zap.String("path", c.Request().URL.Path))
		} else {
			logger.Debug("Request rejected", zap.Error(err), zap.Int("status", code))
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}

		view := errorView{
			Title: errorTitle,
			Breadcrumbs: []struct{ Title, URL string }{
				{Title: "Home", URL: "/"},
				{Title: "Error", URL: ""},
			},
			Data: ErrorPage{ErrorTitle: errorTitle, ErrorMessage: errorMessage},
		}

		if renderErr := c.Render(code, "error.html", view); renderErr != nil {
			logger.Error("Failed to render error page", zap.Error(renderErr))
			_ = c.String(code, errorMessage)
		}
	}
}
