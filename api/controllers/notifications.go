package controllers

import (
	"net/http"

	"github.com/angelmondragon/luxe-storefront/api/responses"
	"github.com/angelmondragon/luxe-storefront/internal/notifications"
	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
)

type notificationDrainer interface {
	Drain() []notifications.Notification
}

// DrainNotifications hands pending toasts to the caller and empties the feed.
func DrainNotifications(feed notificationDrainer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if feed == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notification feed unavailable"))
			return
		}
		responses.WriteSuccess(w, feed.Drain())
	}
}
