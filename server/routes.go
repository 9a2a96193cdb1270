package server

import "github.com/prometheus/client_golang/prometheus/promhttp"

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())

	// AUTH
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware(s.RequireToken())...))
	s.RegisterRouteHandler("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireToken())...))

	// ADMIN MANAGEMENT
	s.RegisterRouteHandler("GET "+RouteAdmins, ChainMiddleware(s.ListAdminsHandler(), s.APIMiddleware(s.RequireToken(), s.RequireSuperadmin())...))
	s.RegisterRouteHandler("POST "+RouteAdmins, ChainMiddleware(s.CreateAdminHandler(), s.APIMiddleware(s.RequireToken(), s.RequireSuperadmin())...))
	s.RegisterRouteHandler("DELETE "+RouteAdmin, ChainMiddleware(s.DeleteAdminHandler(), s.APIMiddleware(s.RequireToken(), s.RequireSuperadmin())...))

	// CLUB CONTENT: public reads, club scoped writes
	s.RegisterRouteHandler("GET "+RouteClubContent, ChainMiddleware(s.ListContentHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteClubContentRecord, ChainMiddleware(s.GetContentHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteClubContent, ChainMiddleware(s.CreateContentHandler(), s.APIMiddleware(s.RequireToken(), s.RequireClubScope(ParamClubID))...))
	s.RegisterRouteHandler("PUT "+RouteClubContentRecord, ChainMiddleware(s.UpdateContentHandler(), s.APIMiddleware(s.RequireToken(), s.RequireClubScope(ParamClubID))...))
	s.RegisterRouteHandler("DELETE "+RouteClubContentRecord, ChainMiddleware(s.DeleteContentHandler(), s.APIMiddleware(s.RequireToken(), s.RequireClubScope(ParamClubID))...))

	// UPLOADS
	s.RegisterRouteHandler("POST "+RouteClubUploads, ChainMiddleware(s.UploadHandler(), s.APIMiddleware(s.RequireToken(), s.RequireClubScope(ParamClubID))...))
	s.RegisterRouteHandler("GET "+RouteUploadFile, ChainMiddleware(s.ServeUploadHandler(), s.APIMiddleware()...))
}
