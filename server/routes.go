package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET /", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageUIHandler(), s.HTMLMiddleWare(s.AuthPageGuard())...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteForgotPassword, ChainMiddleware(s.ForgotPasswordHandler(), s.HTMLMiddleWare()...))

	// REGISTRATION
	s.RegisterRouteHandler("GET "+RouteRegister, ChainMiddleware(s.RegisterPageHandler(), s.HTMLMiddleWare(s.AuthPageGuard())...))
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteSelectProviderRole, ChainMiddleware(s.SelectProviderRolePageHandler(), s.HTMLMiddleWare(s.AuthPageGuard())...))
	s.RegisterRouteHandler("GET "+RouteRegisterProvider, ChainMiddleware(s.ProviderRegisterPageHandler(), s.HTMLMiddleWare(s.AuthPageGuard())...))
	s.RegisterRouteHandler("POST "+RouteAuthRegisterProvider, ChainMiddleware(s.ProviderRegisterSubmissionHandler(), s.HTMLMiddleWare()...))

	// GOOGLE SIGN-IN
	s.RegisterRouteHandler("GET "+RouteGoogleBegin, ChainMiddleware(s.GoogleBeginHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteGoogleCallback, ChainMiddleware(s.GoogleCallbackHandler(), s.HTMLMiddleWare()...))

	// CUSTOMER
	s.RegisterRouteHandler("GET "+RouteCustomerDashboard, ChainMiddleware(s.CustomerDashboardUIHandler(), s.HTMLMiddleWare(s.RequireRoles(customerOnly...))...))
	s.RegisterRouteHandler("GET "+RouteMyBookings, ChainMiddleware(s.MyBookingsUIHandler(), s.HTMLMiddleWare(s.RequireRoles(customerOnly...))...))
	s.RegisterRouteHandler("POST "+RouteBookings, ChainMiddleware(s.BookSubmissionHandler(), s.HTMLMiddleWare(s.RequireRoles(customerOnly...))...))
	s.RegisterRouteHandler("POST "+RouteBookingCancel, ChainMiddleware(s.BookingCancelHandler(), s.HTMLMiddleWare(s.RequireRoles(customerOnly...))...))
	for path := range deepLinks {
		s.RegisterRouteHandler("GET "+path, ChainMiddleware(s.DeepLinkHandler(), s.HTMLMiddleWare(s.RequireRoles(customerOnly...))...))
	}

	// PROVIDER
	s.RegisterRouteHandler("GET "+RouteServiceDashboard, ChainMiddleware(s.ServiceDashboardUIHandler(), s.HTMLMiddleWare(s.RequireRoles(providerOnly...))...))
	s.RegisterRouteHandler("POST "+RouteListings, ChainMiddleware(s.ListingCreateHandler(), s.HTMLMiddleWare(s.RequireRoles(providerOnly...))...))
	s.RegisterRouteHandler("POST "+RouteListingDelete, ChainMiddleware(s.ListingDeleteHandler(), s.HTMLMiddleWare(s.RequireRoles(providerOnly...))...))
	s.RegisterRouteHandler("POST "+RouteListingImage, ChainMiddleware(s.ListingImageHandler(), s.HTMLMiddleWare(s.RequireRoles(providerOnly...))...))
	s.RegisterRouteHandler("POST "+RouteProfileDelete, ChainMiddleware(s.ProfileDeleteHandler(), s.HTMLMiddleWare(s.RequireRoles(providerOnly...))...))

	// ADMIN
	s.RegisterRouteHandler("GET "+RouteAdminDashboard, ChainMiddleware(s.AdminDashboardUIHandler(), s.HTMLMiddleWare(s.RequireRoles(adminOnly...))...))
	s.RegisterRouteHandler("POST "+RouteAdminUserStatus, ChainMiddleware(s.AdminUserStatusHandler(), s.HTMLMiddleWare(s.RequireRoles(adminOnly...))...))
}
