package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/pratik-mahalle/cloudcost/internal/api/middleware"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/utils"
)

// requireUser returns the authenticated user ID or writes a 401
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Authentication required"))
		return "", false
	}
	return userID, true
}

// decodeBody decodes a JSON request body into v
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return false
	}
	return true
}

// decodeOptionalBody is decodeBody for endpoints whose body may be absent.
// An empty body leaves v untouched; Content-Length is not consulted so
// chunked requests are read too.
func decodeOptionalBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !stderrors.Is(err, io.EOF) {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return false
	}
	return true
}

// writeServiceError converts err to an AppError, logging server-side failures
func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error, message string) {
	appErr := errors.FromError(err, message)
	if appErr.StatusCode >= http.StatusInternalServerError {
		log.ErrorWithErr(err, message)
	}
	utils.WriteError(w, appErr)
}
