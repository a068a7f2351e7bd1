// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	catalogfeature "github.com/dalemusser/eduhub/internal/app/features/catalog"
	contentsfeature "github.com/dalemusser/eduhub/internal/app/features/contents"
	healthfeature "github.com/dalemusser/eduhub/internal/app/features/health"
	importerfeature "github.com/dalemusser/eduhub/internal/app/features/importer"
	lessonsfeature "github.com/dalemusser/eduhub/internal/app/features/lessons"
	loginfeature "github.com/dalemusser/eduhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/eduhub/internal/app/features/logout"
	questionsfeature "github.com/dalemusser/eduhub/internal/app/features/questions"
	quizzesfeature "github.com/dalemusser/eduhub/internal/app/features/quizzes"
	studentsfeature "github.com/dalemusser/eduhub/internal/app/features/students"
	subjectsfeature "github.com/dalemusser/eduhub/internal/app/features/subjects"
	unitsfeature "github.com/dalemusser/eduhub/internal/app/features/units"
	"github.com/dalemusser/eduhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. EduHub mounts three surfaces:
//   - /api/catalog and /api/quiz: public delivery endpoints
//   - /api/<entity> and /api/import: session-gated content management
//   - /health, /api/login, /api/logout: plumbing
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(db, logger)))

	// Authentication
	r.Mount("/api/login", loginfeature.Routes(loginfeature.NewHandler(db, sessionMgr, logger)))
	r.Mount("/api/logout", logoutfeature.Routes(logoutfeature.NewHandler(sessionMgr, logger)))

	// Public delivery
	r.Mount("/api/catalog", catalogfeature.Routes(catalogfeature.NewHandler(db, logger)))
	r.Mount("/api/quiz", quizzesfeature.Routes(quizzesfeature.NewHandler(db, logger)))

	// Content management (teacher/admin)
	r.Mount("/api/subjects", subjectsfeature.Routes(subjectsfeature.NewHandler(db, logger), sessionMgr))
	r.Mount("/api/units", unitsfeature.Routes(unitsfeature.NewHandler(db, logger), sessionMgr))
	r.Mount("/api/lessons", lessonsfeature.Routes(lessonsfeature.NewHandler(db, logger), sessionMgr))
	r.Mount("/api/contents", contentsfeature.Routes(contentsfeature.NewHandler(db, logger), sessionMgr))
	r.Mount("/api/questions", questionsfeature.Routes(questionsfeature.NewHandler(db, logger), sessionMgr))
	r.Mount("/api/students", studentsfeature.Routes(studentsfeature.NewHandler(db, logger), sessionMgr))

	// Bulk import (authorization is resolved per request inside the handlers)
	r.Mount("/api/import", importerfeature.Routes(importerfeature.NewHandler(db, logger)))

	return r, nil
}
