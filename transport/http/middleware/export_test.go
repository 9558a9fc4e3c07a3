package middleware

import "time"

func WithClock(mw AppMiddleware, now func() time.Time) AppMiddleware {
	mw.(*appMiddleware).now = now

	return mw
}
