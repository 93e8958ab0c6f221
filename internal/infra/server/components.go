package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	ginzerolog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.elastic.co/apm/module/apmgin"

	activityController "github.com/tasklink/tasklink/internal/api/controllers/activity"
	commentController "github.com/tasklink/tasklink/internal/api/controllers/comment"
	projectController "github.com/tasklink/tasklink/internal/api/controllers/project"
	taskController "github.com/tasklink/tasklink/internal/api/controllers/task"
	"github.com/tasklink/tasklink/internal/config"
	"github.com/tasklink/tasklink/internal/domain/activity"
	"github.com/tasklink/tasklink/internal/domain/authz"
	"github.com/tasklink/tasklink/internal/domain/comment"
	"github.com/tasklink/tasklink/internal/domain/project"
	"github.com/tasklink/tasklink/internal/domain/storage"
	"github.com/tasklink/tasklink/internal/domain/task"
	apmTracing "github.com/tasklink/tasklink/internal/infra/apm/tracing"
	cronActivity "github.com/tasklink/tasklink/internal/infra/cron/activity"
	esCommon "github.com/tasklink/tasklink/internal/infra/elasticsearch/common"
	esStore "github.com/tasklink/tasklink/internal/infra/elasticsearch/store"
	"github.com/tasklink/tasklink/internal/infra/memory"
	"github.com/tasklink/tasklink/internal/infra/server/binding/validation"
	"github.com/tasklink/tasklink/internal/infra/server/routing"
)

// Components holds the fully-wired application: stores, services,
// controllers, HTTP handlers and the background sweeper.
type Components struct {
	conf *config.App

	ginEngine *gin.Engine

	projectsService project.Service
	tasksService    task.Service
	commentsService comment.Service
	activityService activity.Service

	sweeper cronActivity.Sweeper
}

type stores struct {
	projects storage.Store[project.Project]
	tasks    storage.Store[task.Task]
	comments storage.Store[comment.Comment]
	activity storage.Store[activity.Entry]
}

func buildStores(conf *config.App) (*stores, error) {
	switch conf.Storage.Backend {
	case config.StorageElasticsearch:
		esClient, err := esCommon.NewClient(conf.Elasticsearch)
		if err != nil {
			return nil, err
		}
		return &stores{
			projects: esStore.NewProjectStore(esClient),
			tasks:    esStore.NewTaskStore(esClient),
			comments: esStore.NewCommentStore(esClient),
			activity: esStore.NewActivityStore(esClient),
		}, nil
	case config.StorageMemory, "":
		return &stores{
			projects: memory.NewProjectStore(),
			tasks:    memory.NewTaskStore(),
			comments: memory.NewCommentStore(),
			activity: memory.NewActivityStore(),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend [%s]", conf.Storage.Backend)
	}
}

// NewComponents wires everything up based on the given conf
func NewComponents(conf *config.App) (*Components, error) {
	validation.SetUpValidators()

	backingStores, err := buildStores(conf)
	if err != nil {
		return nil, err
	}

	authorizer := authz.PermitAll{}
	activityService := activity.NewService(backingStores.activity)
	projectsService := project.NewService(backingStores.projects, authorizer, activityService)
	tasksService := task.NewService(backingStores.tasks, projectsService, authorizer, activityService)
	commentsService := comment.NewService(backingStores.comments, backingStores.tasks, activityService)

	ginEngine := gin.New()
	ginEngine.Use(ginzerolog.SetLogger())
	ginEngine.Use(gin.Recovery())
	ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))
	ginEngine.Use(apmgin.Middleware(ginEngine))

	ginEngine.NoRoute(routing.NoRoute)
	ginEngine.NoMethod(routing.NoMethod)

	projectsHandler := routing.ProjectsRoutesHandler{AuthSettings: conf.Auth, Controller: projectController.New(projectsService)}
	projectsHandler.RegisterRoutes(ginEngine)
	tasksHandler := routing.TasksRoutesHandler{AuthSettings: conf.Auth, Controller: taskController.New(tasksService)}
	tasksHandler.RegisterRoutes(ginEngine)
	commentsHandler := routing.CommentsRoutesHandler{AuthSettings: conf.Auth, Controller: commentController.New(commentsService)}
	commentsHandler.RegisterRoutes(ginEngine)
	activityHandler := routing.ActivityRoutesHandler{AuthSettings: conf.Auth, Controller: activityController.New(activityService)}
	activityHandler.RegisterRoutes(ginEngine)

	sweeper := cronActivity.NewSweeper(activityService, conf.Activity, apmTracing.NewTracer())

	return &Components{
		conf:            conf,
		ginEngine:       ginEngine,
		projectsService: projectsService,
		tasksService:    tasksService,
		commentsService: commentsService,
		activityService: activityService,
		sweeper:         sweeper,
	}, nil
}

// Run starts the sweeper and the HTTP server, blocking until a shutdown
// signal arrives, then drains in-flight requests within the configured
// timeout.
func (c *Components) Run() {
	if c.conf.Activity.SweepSchedule != "" {
		if err := c.sweeper.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start the activity sweeper")
		}
		defer c.sweeper.Stop()
	}

	srv := &http.Server{
		Addr:    c.conf.BindAddress,
		Handler: c.ginEngine,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to listen")
		}
	}()
	log.Info().Str("address", c.conf.BindAddress).Msg("Serving requests")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), c.conf.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
