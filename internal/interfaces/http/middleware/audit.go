package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	auditapp "github.com/tsaci/backend/internal/application/audit"
	"github.com/tsaci/backend/internal/domain/audit"
)

// subActions maps the trailing path segment of action routes to the audit
// action it represents. Anything not listed falls back to the HTTP method.
var subActions = map[string]audit.Action{
	"login":     audit.ActionLogin,
	"register":  audit.ActionCreate,
	"approve":   audit.ActionApprove,
	"reject":    audit.ActionReject,
	"complete":  audit.ActionComplete,
	"cancel":    audit.ActionCancel,
	"adjust":    audit.ActionAdjust,
	"stage":     audit.ActionUpdate,
	"status":    audit.ActionUpdate,
	"threshold": audit.ActionUpdate,
	"bulk":      audit.ActionUpdate,
}

var methodActions = map[string]audit.Action{
	http.MethodPost:   audit.ActionCreate,
	http.MethodPut:    audit.ActionUpdate,
	http.MethodPatch:  audit.ActionUpdate,
	http.MethodDelete: audit.ActionDelete,
}

type auditDetails struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Status int    `json:"status"`
}

// AuditTrail records every successful mutating request in the audit trail.
// Reads and failed requests are not recorded. The user is taken from the
// token claims when present; login and registration are recorded without one.
func AuditTrail(recorder *auditapp.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		action, ok := methodActions[c.Request.Method]
		if !ok {
			return
		}
		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			return
		}

		route := strings.TrimPrefix(c.FullPath(), "/api/v1/")
		segments := strings.Split(route, "/")
		if len(segments) == 0 || segments[0] == "" || segments[0] == "system" {
			return
		}
		entityType := segments[0]

		last := segments[len(segments)-1]
		if sub, ok := subActions[last]; ok {
			action = sub
		}

		var entityID *int64
		if raw := c.Param("id"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				entityID = &id
			}
		}

		var userID *int64
		if id, ok := GetJWTUserID(c); ok {
			userID = &id
		}

		details, _ := json.Marshal(auditDetails{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Status: status,
		})

		recorder.Record(c.Request.Context(), auditapp.RecordInput{
			UserID:     userID,
			Action:     action,
			EntityType: entityType,
			EntityID:   entityID,
			Details:    string(details),
			IPAddress:  c.ClientIP(),
		})
	}
}
