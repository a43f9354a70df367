package api

import (
	"github.com/spec-kit/auth-service/internal/api/handlers"
	"github.com/spec-kit/auth-service/internal/transport"
)

// Routes declares the full pattern table: name, broker subject, public flag
// and reply expectation. The guard's allow-list is derived from this table at
// startup, so pattern metadata lives in exactly one place.
func Routes(authH *handlers.AuthHandler, usersH *handlers.UsersHandler) []transport.Route {
	return []transport.Route{
		{Pattern: "login", Subject: transport.RPCSubjectPrefix + "login", Public: true, Reply: true, Handler: authH.Login},
		{Pattern: "register", Subject: transport.RPCSubjectPrefix + "register", Public: true, Reply: true, Handler: authH.Register},
		{Pattern: "validate_token", Subject: transport.RPCSubjectPrefix + "validate_token", Public: true, Reply: true, Handler: authH.ValidateToken},

		{Pattern: "create_user", Subject: transport.RPCSubjectPrefix + "create_user", Reply: true, Handler: usersH.Create},
		{Pattern: "find_all_users", Subject: transport.RPCSubjectPrefix + "find_all_users", Reply: true, Handler: usersH.FindAll},
		{Pattern: "get_user_profile", Subject: transport.RPCSubjectPrefix + "get_user_profile", Reply: true, Handler: usersH.GetProfile},
		{Pattern: "find_user_by_id", Subject: transport.RPCSubjectPrefix + "find_user_by_id", Reply: true, Handler: usersH.FindByID},
		{Pattern: "update_user", Subject: transport.RPCSubjectPrefix + "update_user", Reply: true, Handler: usersH.Update},
		{Pattern: "delete_user", Subject: transport.RPCSubjectPrefix + "delete_user", Reply: true, Handler: usersH.Delete},

		// Fire-and-forget event patterns: full subjects, no reply. The validate
		// request answers by publishing auth.token.validated / auth.token.invalid.
		{Pattern: "auth.validate.request", Subject: "auth.validate.request", Public: true, Handler: authH.ValidateRequest},
		{Pattern: "auth.logout.request", Subject: "auth.logout.request", Public: true, Handler: authH.LogoutRequest},
	}
}

// PublicPatterns extracts the allow-list for the access guard.
func PublicPatterns(routes []transport.Route) []string {
	public := make([]string, 0, len(routes))
	for _, route := range routes {
		if route.Public {
			public = append(public, route.Pattern)
		}
	}
	return public
}
