package router

import (
	"orchidMatch/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/refresh", handler.RefreshToken)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/:id", handler.GetUserByID, authRequired, adminOnly)
}

func SetupOrchidRoutes(api *echo.Group, handler *rest.OrchidHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	orchids := api.Group("/orchids")

	orchids.GET("", handler.GetAllOrchids)
	orchids.GET("/search", handler.SearchOrchids)
	orchids.GET("/statistics", handler.GetStatistics)
	orchids.GET("/values/:column", handler.GetDistinctValues)
	orchids.GET("/:id", handler.GetOrchidByID)

	orchids.POST("", handler.CreateOrchid, authRequired, adminOnly)
	orchids.PUT("/:id", handler.UpdateOrchid, authRequired, adminOnly)
	orchids.DELETE("/:id", handler.DeleteOrchid, authRequired, adminOnly)
}

func SetupProfileRoutes(api *echo.Group, handler *rest.ProfileHandler, authRequired echo.MiddlewareFunc) {
	profiles := api.Group("/profiles", authRequired)

	profiles.GET("/me", handler.GetMyProfile)
	profiles.PUT("/me", handler.UpsertMyProfile)
}

func SetupRecoRoutes(api *echo.Group, handler *rest.RecoHandler, authRequired echo.MiddlewareFunc) {
	api.GET("/recommendations", handler.Recommend, authRequired)

	api.GET("/orchids/similarity", handler.Similarity, authRequired)
	api.GET("/orchids/:id/similar", handler.SimilarOrchids, authRequired)
}

func SetupRecoAdminRoutes(api *echo.Group, handler *rest.RecoAdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin", authRequired, adminOnly)

	admin.GET("/reco/config/:slot", handler.GetConfig)
	admin.PUT("/reco/config/:slot", handler.UpsertConfig)
	admin.PUT("/popularity/:id", handler.SetPopularityScore)
}
