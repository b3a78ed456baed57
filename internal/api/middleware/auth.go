package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Заголовки выставляются API-шлюзом после аутентификации
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingUserID = "требуется заголовок X-User-ID"
	msgInvalidUserID = "некорректный X-User-ID"
)

type userKey struct{}

// User аутентифицированный пользователь запроса
type User struct {
	ID   int64
	Role string
}

// IsAdmin возвращает true для администратора
func (u User) IsAdmin() bool {
	return u.Role == domain.RoleAdmin
}

// WithUser кладет пользователя в контекст
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext извлекает пользователя, установленного Auth
func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey{}).(User)
	return user, ok
}

// Auth требует заголовок X-User-ID. Роль берется из X-User-Role, по умолчанию user
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		role := r.Header.Get(HeaderUserRole)
		if role != domain.RoleAdmin {
			role = domain.RoleUser
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), User{ID: userID, Role: role})))
	})
}
