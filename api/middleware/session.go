package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/brewcart/api/responses"
	pkgerrors "github.com/angelmondragon/brewcart/pkg/errors"
	"github.com/angelmondragon/brewcart/pkg/logger"
)

// SessionHeader carries the browser session that owns cart, preferences and order.
const SessionHeader = "X-Session-Id"

const maxSessionIDLength = 128

// Session resolves the caller's session id. A request without one starts a new
// session; the id is echoed so the client can keep using it.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := strings.TrimSpace(r.Header.Get(SessionHeader))
			if sid == "" {
				sid = uuid.NewString()
			}
			if len(sid) > maxSessionIDLength {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("%s exceeds %d characters", SessionHeader, maxSessionIDLength)))
				return
			}

			w.Header().Set(SessionHeader, sid)

			ctx := WithSessionID(r.Context(), sid)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sid)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
