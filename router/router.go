package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bonsai/pkg/middleware"
)

// Controllers groups the handler sets the router wires up. Each field is
// a minimal interface so tests can pass fakes.
type Controllers struct {
	User interface {
		Login(echo.Context) error
		Logout(echo.Context) error
		Register(echo.Context) error
		List(echo.Context) error
		IsAdmin(echo.Context) error
		Get(echo.Context) error
	}
	Bonsai interface {
		List(echo.Context) error
		ListByUser(echo.Context) error
		Create(echo.Context) error
		Get(echo.Context) error
		Delete(echo.Context) error
		ListSpecies(echo.Context) error
		UploadImage(echo.Context) error
		GetImage(echo.Context) error
		DeleteImage(echo.Context) error
		ListImages(echo.Context) error
	}
	PesticideLog interface {
		Catalog(echo.Context) error
		Recommended(echo.Context) error
		ListByBonsai(echo.Context) error
		ListByUser(echo.Context) error
		Add(echo.Context) error
		Delete(echo.Context) error
	}
	WorkLog interface {
		ListWorkTypes(echo.Context) error
		ListByBonsai(echo.Context) error
		ListByUser(echo.Context) error
		Add(echo.Context) error
		Delete(echo.Context) error
	}
	Recommend interface {
		ForBonsai(echo.Context) error
		ForUser(echo.Context) error
		SpeciesPesticides(echo.Context) error
		MonthlyRisks(echo.Context) error
		TestRecommendation(echo.Context) error
		APIInfo(echo.Context) error
	}
	Master interface {
		ListPesticides(echo.Context) error
		AddPesticide(echo.Context) error
		UpdatePesticide(echo.Context) error
		DeletePesticide(echo.Context) error
		ListPestDiseases(echo.Context) error
		AddPestDisease(echo.Context) error
		DeletePestDisease(echo.Context) error
		ListSpecies(echo.Context) error
		AddSpecies(echo.Context) error
		DeleteSpecies(echo.Context) error
		ListEffectiveness(echo.Context) error
		UpsertEffectiveness(echo.Context) error
		DeleteEffectiveness(echo.Context) error
		ListSpeciesRisks(echo.Context) error
		UpsertSpeciesRisk(echo.Context) error
		DeleteSpeciesRisk(echo.Context) error
		ListProhibited(echo.Context) error
		UpsertProhibited(echo.Context) error
		DeleteProhibited(echo.Context) error
		Summary(echo.Context) error
	}
	Health interface {
		Health(echo.Context) error
	}
}

func New(e *echo.Echo, allowedOrigins []string, c Controllers) *echo.Echo {
	e.Use(middleware.RequestLog())
	e.Use(middleware.CORS(allowedOrigins))

	e.GET("/health", c.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	user := e.Group("/api/user")
	user.POST("/login", c.User.Login)
	user.GET("/logout", c.User.Logout)
	user.POST("/register", c.User.Register)
	user.GET("/users", c.User.List)
	user.GET("/is-admin/:user_id", c.User.IsAdmin)
	user.GET("/:user_id", c.User.Get)

	tree := e.Group("/api/bonsai")
	tree.GET("", c.Bonsai.List)
	tree.GET("/user/:user_id", c.Bonsai.ListByUser)
	tree.POST("", c.Bonsai.Create)
	tree.GET("/species", c.Bonsai.ListSpecies)
	tree.GET("/:bonsai_id", c.Bonsai.Get)
	tree.DELETE("/:bonsai_id", c.Bonsai.Delete)
	tree.POST("/:bonsai_id/image", c.Bonsai.UploadImage)
	tree.GET("/:bonsai_id/images", c.Bonsai.ListImages)
	tree.GET("/image/:image_id", c.Bonsai.GetImage)
	tree.DELETE("/image/:image_id", c.Bonsai.DeleteImage)

	pest := e.Group("/api/pesticides")
	pest.GET("/list", c.PesticideLog.Catalog)
	pest.GET("/recommended", c.PesticideLog.Recommended)
	pest.GET("/recommended/species/:species_id", c.Recommend.SpeciesPesticides)
	pest.GET("/user/:user_id", c.PesticideLog.ListByUser)
	pest.GET("/:bonsai_id", c.PesticideLog.ListByBonsai)
	pest.POST("/:bonsai_id", c.PesticideLog.Add)
	pest.DELETE("/log/:log_id", c.PesticideLog.Delete)
	pest.GET("/recommendation/:bonsai_id", c.Recommend.ForBonsai)
	pest.GET("/recommendations/user/:user_id", c.Recommend.ForUser)
	pest.GET("/species/:species_id/pesticides", c.Recommend.SpeciesPesticides)
	pest.GET("/monthly-risks/:bonsai_id", c.Recommend.MonthlyRisks)
	pest.GET("/test-recommendation/:species_id", c.Recommend.TestRecommendation)
	pest.GET("/api-info", c.Recommend.APIInfo)

	work := e.Group("/api/work-logs")
	work.GET("/work-types", c.WorkLog.ListWorkTypes)
	work.GET("/user/:user_id", c.WorkLog.ListByUser)
	work.GET("/:bonsai_id", c.WorkLog.ListByBonsai)
	work.POST("/:bonsai_id", c.WorkLog.Add)
	work.DELETE("/log/:log_id", c.WorkLog.Delete)

	admin := e.Group("/api/admin/master")
	admin.GET("/pesticides", c.Master.ListPesticides)
	admin.POST("/pesticides", c.Master.AddPesticide)
	admin.PUT("/pesticides/:pesticide_id", c.Master.UpdatePesticide)
	admin.DELETE("/pesticides/:pesticide_id", c.Master.DeletePesticide)
	admin.GET("/pest-diseases", c.Master.ListPestDiseases)
	admin.POST("/pest-diseases", c.Master.AddPestDisease)
	admin.DELETE("/pest-diseases/:pest_disease_id", c.Master.DeletePestDisease)
	admin.GET("/species", c.Master.ListSpecies)
	admin.POST("/species", c.Master.AddSpecies)
	admin.DELETE("/species/:species_id", c.Master.DeleteSpecies)
	admin.GET("/pesticide-effectiveness", c.Master.ListEffectiveness)
	admin.POST("/pesticide-effectiveness", c.Master.UpsertEffectiveness)
	admin.DELETE("/pesticide-effectiveness/:effectiveness_id", c.Master.DeleteEffectiveness)
	admin.GET("/species-pest-diseases", c.Master.ListSpeciesRisks)
	admin.POST("/species-pest-diseases", c.Master.UpsertSpeciesRisk)
	admin.DELETE("/species-pest-diseases/:species_risk_id", c.Master.DeleteSpeciesRisk)
	admin.GET("/species-prohibited-pesticides", c.Master.ListProhibited)
	admin.POST("/species-prohibited-pesticides", c.Master.UpsertProhibited)
	admin.DELETE("/species-prohibited-pesticides/:prohibited_id", c.Master.DeleteProhibited)
	admin.GET("/summary", c.Master.Summary)

	return e
}
