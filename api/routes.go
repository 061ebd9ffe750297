package api

// Route path constants
// All platform endpoints consumed by the console are defined here to
// ensure consistency and prevent typos
const (
	// User management
	RouteUsers      = "/v1/users"
	RouteUserFilter = "/v1/users/filter"

	// OAuth2 client management
	RouteOAuth2Client = "/v1/oauth2/client"

	// Account and role management
	RouteAccounts = "/v1/accounts"
	RouteRoles    = "/v1/roles"
	RouteScopes   = "/v1/scopes"

	// OAuth2 / OIDC flow
	RouteOAuth2Authorize = "/oauth2/authorize"
	RouteOAuth2Token     = "/oauth2/token"
	RouteOAuth2Revoke    = "/oauth2/revoke"

	// Assistant chat
	RouteAssistantSessions = "/v1/assistant/sessions"
)
