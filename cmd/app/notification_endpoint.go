package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"SchemePortalAPI/internal/middleware"
	"SchemePortalAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type broadcastRequest struct {
	UserID   int64   `json:"userid"`
	Title    string  `json:"title"`
	Message  string  `json:"message"`
	Link     *string `json:"link,omitempty"`
	Category string  `json:"category"`
	Priority string  `json:"priority"`
}

func registerNotificationRoutes(g *echo.Group, ns *services.NotificationService) {
	notifications := g.Group("/notifications")
	notifications.Use(middleware.JWTMiddleware())

	notifications.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		limit := 0
		if v := c.QueryParam("limit"); v != "" {
			fmt.Sscanf(v, "%d", &limit)
		}
		list, err := ns.List(c.Request().Context(), claims.UserID, limit)
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, list)
	})

	notifications.GET("/unread-count", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		count, err := ns.UnreadCount(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, map[string]int{"unread": count})
	})

	notifications.PUT("/:id/read", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if err := ns.MarkRead(c.Request().Context(), c.Param("id"), claims.UserID); err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, map[string]string{"message": "marked read"})
	})

	notifications.PUT("/read-all", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if err := ns.MarkAllRead(c.Request().Context(), claims.UserID); err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, map[string]string{"message": "all marked read"})
	})

	// live event stream (SSE). The subscription is torn down when the
	// client disconnects.
	notifications.GET("/stream", streamHandler(ns))

	// ADMIN: push a notification to a user
	admin := notifications.Group("", middleware.AdminOnly)
	admin.POST("", func(c echo.Context) error {
		req := new(broadcastRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request"})
		}
		n, err := ns.Create(c.Request().Context(), req.UserID, req.Title, req.Message, req.Link, req.Category, req.Priority)
		if err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(201, n)
	})
}

func streamHandler(ns *services.NotificationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)

		sub := ns.Subscribe(claims.UserID)
		defer sub.Stop()

		resp := c.Response()
		resp.Header().Set(echo.HeaderContentType, "text/event-stream")
		resp.Header().Set("Cache-Control", "no-cache")
		resp.Header().Set("Connection", "keep-alive")
		resp.WriteHeader(http.StatusOK)
		resp.Flush()

		ctx := c.Request().Context()
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-sub.Events():
				if !ok {
					return nil
				}
				data, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				if _, err := fmt.Fprintf(resp, "data: %s\n\n", data); err != nil {
					return nil
				}
				resp.Flush()
			}
		}
	}
}
