package wire

import (
	"storyapp/internal/api"
	"storyapp/internal/api/config"
	"storyapp/internal/api/handler"
	"storyapp/internal/job"
	"storyapp/internal/pkg/cron"
	"storyapp/internal/repository"
	"storyapp/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	storyRepo := repository.NewStoryRepository(db)
	engagementRepo := repository.NewEngagementRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	characterRepo := repository.NewCharacterRepo(db)

	userClient := service.NewUserClient()
	allocator := service.NewNumberAllocator(storyRepo)
	assembler := service.NewStoryAssembler(engagementRepo, userClient)

	storyService := service.NewStoryService(storyRepo, engagementRepo, genreRepo, allocator, assembler)
	engagementService := service.NewEngagementService(engagementRepo, storyRepo, assembler)
	characterService := service.NewCharacterService(characterRepo, storyRepo)
	genreService := service.NewGenreService(genreRepo)

	handlers := &api.HandlersGroup{
		StoryHandler:      handler.NewStoryHandler(storyService, engagementService),
		EngagementHandler: handler.NewEngagementHandler(engagementService),
		CharacterHandler:  handler.NewCharacterHandler(characterService),
		GenreHandler:      handler.NewGenreHandler(genreService),
		MediaHandler:      handler.NewMediaHandler(),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		job.NewStoryMetricsJob(storyRepo, engagementRepo),
		job.NewNumberBackfillJob(allocator),
	)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
