package server

// Route path constants
const (
	// Service
	RouteHealth  = "/health"
	RouteMetrics = "/metrics"

	// Auth
	RouteAuthLogin  = "/api/auth/login"
	RouteAuthLogout = "/api/auth/logout"
	RouteAuthMe     = "/api/auth/me"

	// Admin management (superadmin only)
	RouteAdmins = "/api/admins"
	RouteAdmin  = "/api/admins/{id}"

	// Club content
	RouteClubContent       = "/api/clubs/{clubID}/{kind}"
	RouteClubContentRecord = "/api/clubs/{clubID}/{kind}/{id}"
	RouteClubUploads       = "/api/clubs/{clubID}/uploads"

	// Uploaded files
	RouteUploadsPrefix = "/uploads/"
	RouteUploadFile    = RouteUploadsPrefix + "{key...}"

	// Path parameters
	ParamClubID = "clubID"
	ParamKind   = "kind"
	ParamID     = "id"
	ParamKey    = "key"
)
