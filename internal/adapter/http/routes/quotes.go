package routes

import (
	"github.com/gin-gonic/gin"

	"instauto/internal/adapter/http/middleware"
)

const (
	PathQuoteRequests = "/quote-requests"
	PathWorkshops     = "/workshops"
	PathMotorists     = "/motorists"
)

func addQuoteRoutes(rg *gin.RouterGroup, jwtSecret string, h Handlers) {
	session := middleware.Session(jwtSecret)

	quotes := rg.Group(PathQuoteRequests, session)
	{
		quotes.POST("", h.QuoteRequests.Submit)
		quotes.POST("/attachments", h.Attachments.Upload)
		quotes.GET("/attachments/url", h.Attachments.URL)
		quotes.GET("/:id", h.QuoteRequests.Get)
		quotes.PATCH("/:id/respond", h.QuoteRequests.Respond)
		quotes.PATCH("/:id/accept", h.QuoteRequests.Accept)
		quotes.PATCH("/:id/reject", h.QuoteRequests.Reject)
		quotes.PATCH("/:id/cancel", h.QuoteRequests.Cancel)
	}

	workshops := rg.Group(PathWorkshops, session)
	{
		workshops.GET("/:workshop_id/quote-requests/pending", h.QuoteRequests.ListPendingForWorkshop)
	}

	motorists := rg.Group(PathMotorists, session)
	{
		motorists.GET("/me/quote-requests", h.QuoteRequests.ListMotoristHistory)
	}
}
