package main

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradetrack-api/internal/handler"
)

type routes struct {
	auth        *handler.AuthHandler
	subjects    *handler.SubjectHandler
	assessments *handler.AssessmentHandler
	todos       *handler.TodoHandler
	grades      *handler.GradeHandler
	exports     *handler.ExportHandler
	metrics     *handler.MetricsHandler
	jwt         gin.HandlerFunc
}

func registerRoutes(api *gin.RouterGroup, h routes) {
	api.GET("/health", h.metrics.Health)
	api.GET("/ready", h.metrics.Ready)
	api.GET("/metrics", h.metrics.Prometheus)

	api.POST("/register", h.auth.Register)
	api.POST("/login", h.auth.Login)
	api.POST("/refresh", h.auth.Refresh)
	api.GET("/exports/:token", h.exports.Download)

	secured := api.Group("")
	secured.Use(h.jwt)

	secured.POST("/logout", h.auth.Logout)
	secured.GET("/user", h.auth.Me)

	subjects := secured.Group("/subjects")
	subjects.GET("", h.subjects.List)
	subjects.POST("", h.subjects.Create)
	subjects.GET("/search", h.subjects.Search)
	subjects.GET("/:id", h.subjects.Get)
	subjects.PUT("/:id", h.subjects.Update)
	subjects.DELETE("/:id", h.subjects.Delete)

	assessments := secured.Group("/assessments")
	assessments.GET("", h.assessments.List)
	assessments.POST("", h.assessments.Create)
	assessments.GET("/quarter/:quarter", h.assessments.ListByQuarter)
	assessments.GET("/activities/:quarter/:subjectId", h.assessments.ListActivities)
	assessments.GET("/:id", h.assessments.Get)
	assessments.PUT("/:id", h.assessments.Update)
	assessments.DELETE("/:id", h.assessments.Delete)

	todos := secured.Group("/todos")
	todos.GET("", h.todos.List)
	todos.POST("", h.todos.Create)
	todos.GET("/:id", h.todos.Get)
	todos.PUT("/:id", h.todos.Update)
	todos.DELETE("/:id", h.todos.Delete)

	grades := secured.Group("/grades")
	grades.GET("/overall", h.grades.Overall)
	grades.GET("/export", h.exports.Export)
	grades.POST("/export/share", h.exports.Share)
	grades.GET("/quarter/:quarter", h.grades.Quarter)
	grades.GET("/subject/:subjectId", h.grades.Subject)
	grades.GET("/:quarter/:subjectId", h.grades.Scope)
	grades.GET("/:quarter/:subjectId/:activity", h.grades.Activity)
}
