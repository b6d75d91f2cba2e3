package server

func (s *Server) initRoutes() {
	// CORS preflight; the middleware answers before the handler runs.
	s.RegisterRouteHandler("OPTIONS /api/{path...}", ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))

	// Identity & sessions
	s.RegisterRouteHandler("GET "+RouteCurrentUser, ChainMiddleware(s.CurrentUserHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSessionLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteSession, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// Gamification
	s.RegisterRouteHandler("GET "+RouteAchievements, ChainMiddleware(s.AchievementsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteDashboardStats, ChainMiddleware(s.DashboardStatsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteScoreHistory, ChainMiddleware(s.ScoreHistoryHandler(), s.APIMiddleware()...))

	// Tasks
	s.RegisterRouteHandler("GET "+RouteTasks, ChainMiddleware(s.ListTasksHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteTasks, ChainMiddleware(s.CreateTaskHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteTaskComplete, ChainMiddleware(s.CompleteTaskHandler(), s.APIMiddleware()...))

	// Jobs & savings
	s.RegisterRouteHandler("POST "+RouteJobApply, ChainMiddleware(s.JobApplyHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteSavings, ChainMiddleware(s.SavingsHandler(), s.APIMiddleware()...))

	// Activity counters
	s.RegisterRouteHandler("POST "+RoutePongScore, ChainMiddleware(s.PongScoreHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteTerminalCommand, ChainMiddleware(s.TerminalCommandHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteEasterEgg, ChainMiddleware(s.EasterEggHandler(), s.APIMiddleware()...))
}
