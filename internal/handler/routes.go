package handler

import "github.com/gin-gonic/gin"

// Routes mounts the API surface on the given group. The auth guard is
// applied to the saved-event routes only.
func Routes(api *gin.RouterGroup, events *EventHandler, scheduler *SchedulerHandler, saved *SavedEventHandler, authGuard gin.HandlerFunc) {
	api.GET("/events", events.List)
	api.POST("/events", events.Create)
	// The SPA triggers scrapes with a plain GET; POST stays as an
	// alias for REST-shaped clients.
	api.GET("/events/scrape", events.Scrape)
	api.POST("/events/scrape", events.Scrape)
	api.GET("/events/export", events.Export)

	api.GET("/scheduler/status", scheduler.Status)
	api.POST("/scheduler/start", scheduler.Start)
	api.POST("/scheduler/stop", scheduler.Stop)
	api.POST("/scheduler/trigger", scheduler.Trigger)

	group := api.Group("/saved", authGuard)
	{
		group.GET("", saved.List)
		group.POST("", saved.Save)
		// Event keys can embed full URLs, so the key spans the rest
		// of the path instead of a single segment.
		group.DELETE("/*key", saved.Unsave)
	}
}
