package constants

// Session / context keys
const (
	SessionCookieName          = "nursery_session"
	ContextKeyUserID           = "user_id"
	ContextKeyActiveOrgID      = "active_organization_id"
	ContextKeyOrganization     = "organization"
	ContextKeyOrganizationRole = "organization_member"
	ContextKeyClass            = "class"
	ContextKeyConversation     = "conversation"
)

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
)
