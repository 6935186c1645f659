package handler

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/view"
)

// HandleError is the echo.HTTPErrorHandler of the site.  Client errors
// render the not found page with the error message, everything else the
// server error page.  DELETE requests and clients asking for JSON get the
// {"success": false} body the delete route answers with.
func (h *Handler) HandleError(err error, c echo.Context) {
    if c.Response().Committed {
        return
    }

    code := http.StatusInternalServerError
    msg := ""
    var he *echo.HTTPError
    if errors.As(err, &he) {
        code = he.Code
        if m, ok := he.Message.(string); ok {
            msg = m
        }
    }

    if c.Request().Method == http.MethodHead {
        _ = c.NoContent(code)
        return
    }
    if wantsJSON(c.Request()) {
        body := echo.Map{"success": false}
        if msg != "" && code != http.StatusNotFound {
            body["message"] = msg
        }
        _ = c.JSON(code, body)
        return
    }

    name := "errors/500"
    data := view.ErrorData{Status: code}
    if code < http.StatusInternalServerError {
        name = "errors/404"
        if code != http.StatusNotFound {
            data.Message = msg
        }
    }
    if rerr := h.render(c, code, name, http.StatusText(code), nil, data); rerr != nil {
        h.logError(c, "render error page failed", rerr)
        _ = c.String(code, http.StatusText(code))
    }
}

func wantsJSON(r *http.Request) bool {
    if r.Method == http.MethodDelete {
        return true
    }
    return strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
