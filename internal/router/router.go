package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/notes-api/internal/handler"
	mw "github.com/iliyamo/notes-api/internal/middleware"
)

// Register wires every route onto the Echo instance. Cross-origin
// requests are allowed from any origin (development posture). The
// limiter applies to the auth group; the notes group and /getuser sit
// behind the token gate.
func Register(e *echo.Echo, a *handler.AuthHandler, n *handler.NotesHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	e.Use(echomw.CORS())

	e.GET("/healthz", handler.Health)

	authGate := mw.Auth(jwtSecret)

	auth := e.Group("/api/auth", limiter)
	auth.POST("/createUser", a.CreateUser)
	auth.POST("/login", a.Login)
	auth.POST("/getuser", a.GetUser, authGate)

	notes := e.Group("/api/notes", authGate)
	notes.GET("/fetchAllNotes", n.FetchAll)
	notes.POST("/createNote", n.Create)
	notes.PUT("/updatenote/:id", n.Update)
	notes.DELETE("/deleteNote/:id", n.Delete)
}
