package server

const (
	RouteCurrentUser     = "/api/user/current"
	RouteSessionLogin    = "/api/session/login"
	RouteSession         = "/api/session"
	RouteAchievements    = "/api/achievements"
	RouteTasks           = "/api/tasks"
	RouteTaskComplete    = "/api/tasks/{id}/complete"
	RouteJobApply        = "/api/jobs/apply"
	RouteSavings         = "/api/savings"
	RoutePongScore       = "/api/game/pong-score"
	RouteTerminalCommand = "/api/terminal/command"
	RouteEasterEgg       = "/api/easter-egg"
	RouteDashboardStats  = "/api/dashboard/stats"
	RouteScoreHistory    = "/api/score/history"
)
