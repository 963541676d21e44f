package router

import (
	"github.com/chapternet/directory-api/internal/application"
	"github.com/chapternet/directory-api/internal/container"
	pginfra "github.com/chapternet/directory-api/internal/infrastructure/postgres"
	handlers "github.com/chapternet/directory-api/internal/interface/http"
	"github.com/chapternet/directory-api/internal/router/modules"
)

type appDeps struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Directory  *handlers.DirectoryHandler
	Article    *handlers.ArticleHandler
	Event      *handlers.EventHandler
	Chapter    *handlers.ChapterHandler
	Newsletter *handlers.NewsletterHandler
	Email      *handlers.EmailHandler
}

func buildDeps() appDeps {
	pool := container.GetPGPool()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(pool)
	profiles := pginfra.NewProfileRepository(pool)
	chapters := pginfra.NewChapterRepository(pool)
	articles := pginfra.NewArticleRepository(pool)
	events := pginfra.NewEventRepository(pool)
	subs := pginfra.NewSubscriptionRepository(pool)
	tx := pginfra.NewTxManager(pool)

	regSvc := application.NewRegistrationService(
		users, profiles, tx,
		container.GetRedis(), container.GetRabbitPub(), container.GetMemberIndex(),
		cfg, logger,
	)
	authSvc := application.NewAuthService(
		users, container.GetJWT(), container.GetRedis(),
		container.GetRabbitPub(), cfg, logger,
	)
	userSvc := application.NewUserService(
		users, profiles, chapters,
		container.GetGCS(), cfg.GCSBucket,
		container.GetRedis(), container.GetMemberIndex(), logger,
	)
	dirSvc := application.NewDirectoryService(users, profiles, chapters)
	articleSvc := application.NewArticleService(articles)
	eventSvc := application.NewEventService(events)
	chapterSvc := application.NewChapterService(chapters, users, articles, events)
	newsSvc := application.NewNewsletterService(subs, container.GetRabbitPub(), cfg, logger)

	return appDeps{
		Auth:       handlers.NewAuthHandler(regSvc, authSvc, logger, cfg.CookieDomain, cfg.CookieSecure),
		User:       handlers.NewUserHandler(userSvc, logger),
		Directory:  handlers.NewDirectoryHandler(dirSvc),
		Article:    handlers.NewArticleHandler(articleSvc),
		Event:      handlers.NewEventHandler(eventSvc),
		Chapter:    handlers.NewChapterHandler(chapterSvc),
		Newsletter: handlers.NewNewsletterHandler(newsSvc),
		Email:      handlers.NewEmailHandler(container.GetRabbitPub(), logger, cfg),
	}
}

// InitModules builds every feature module from the shared container and
// registers it with the router registry. Call once during startup.
func InitModules(r *Registry) {
	deps := buildDeps()
	jwt := container.GetJWT()

	r.Add(modules.NewAuthModule(deps.Auth, jwt))
	r.Add(modules.NewDirectoryModule(deps.Directory))
	r.Add(modules.NewUserModule(deps.User, jwt))
	r.Add(modules.NewArticleModule(deps.Article, jwt))
	r.Add(modules.NewEventModule(deps.Event, jwt))
	r.Add(modules.NewChapterModule(deps.Chapter, jwt))
	r.Add(modules.NewNewsletterModule(deps.Newsletter))
	r.Add(modules.NewEmailModule(deps.Email, jwt))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
