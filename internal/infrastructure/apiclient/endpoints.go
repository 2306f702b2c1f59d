package apiclient

import "net/url"

const (
	pathLogin        = "/auth/email/login"
	pathRegister     = "/auth/email/register"
	pathLogout       = "/auth/logout"
	pathTelegramLink = "/auth/telegram/link"
	pathProfile      = "/profile"
	pathAvatar       = "/profile/avatar"
	pathProjects     = "/projects"
	pathVotes        = "/votes"
	pathImageUpload  = "/images/upload"
	pathStats        = "/stats"
)

// Route templates used as metric labels.
const (
	routeProject         = "/projects/:id"
	routeProjectVote     = "/projects/:id/vote"
	routeProjectComments = "/projects/:id/comments"
	routeComment         = "/comments/:id"
	routeUserProjects    = "/users/:id/projects"
)

func projectPath(id string) string         { return "/projects/" + url.PathEscape(id) }
func projectVotePath(id string) string     { return projectPath(id) + "/vote" }
func projectCommentsPath(id string) string { return projectPath(id) + "/comments" }
func commentPath(id string) string         { return "/comments/" + url.PathEscape(id) }
func userProjectsPath(id string) string    { return "/users/" + url.PathEscape(id) + "/projects" }
