package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/atelier-backend/services"
)

type ActivityController struct {
	activityService services.ActivityService
}

func NewActivityController(svc services.ActivityService) *ActivityController {
	return &ActivityController{activityService: svc}
}

// GetActivities handles GET /api/admin/activities
func (ac *ActivityController) GetActivities(c *gin.Context) {
	activities, err := ac.activityService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

// GetNotifications handles GET /api/admin/activities/notifications
func (ac *ActivityController) GetNotifications(c *gin.Context) {
	notifications, err := ac.activityService.GetNotifications(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// GetUnreadCount handles GET /api/admin/activities/notifications/count
func (ac *ActivityController) GetUnreadCount(c *gin.Context) {
	count, err := ac.activityService.UnreadCount(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkAsRead handles POST /api/admin/activities/notifications/:id/mark-read
func (ac *ActivityController) MarkAsRead(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := ac.activityService.MarkAsRead(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllAsRead handles POST /api/admin/activities/notifications/mark-all-read
func (ac *ActivityController) MarkAllAsRead(c *gin.Context) {
	if err := ac.activityService.MarkAllAsRead(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
