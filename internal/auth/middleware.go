package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUserID  ctxKey = "usuarioID"
	CtxIsAdmin ctxKey = "isAdmin"
	CtxPerfil  ctxKey = "perfil"
)

func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ValidarToken(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxIsAdmin, claims.IsAdmin)
		ctx = context.WithValue(ctx, CtxPerfil, claims.Perfil)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := r.Context().Value(CtxIsAdmin)
		if ok, _ := v.(bool); !ok {
			http.Error(w, "Forbidden (admin only)", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UsuarioDoContexto extrai a identidade colocada pelo middleware.
func UsuarioDoContexto(ctx context.Context) (userID uint, isAdmin bool, perfil string) {
	userID, _ = ctx.Value(CtxUserID).(uint)
	isAdmin, _ = ctx.Value(CtxIsAdmin).(bool)
	perfil, _ = ctx.Value(CtxPerfil).(string)
	return
}
