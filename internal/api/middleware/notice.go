package middleware

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// SessionName is the cookie name of the server-side session that carries
// pending notices between requests.
const SessionName = "sessionId"

// AddNotice queues a one-time message for the next rendered page. With a
// session it survives a redirect; without one it is kept for the current
// request only.
func AddNotice(c echo.Context, msg string) {
	if sess, err := session.Get(SessionName, c); err == nil {
		sess.AddFlash(msg)
		if err := sess.Save(c.Request(), c.Response()); err == nil {
			return
		}
	}
	pending, _ := c.Get(noticesKey).([]string)
	c.Set(noticesKey, append(pending, msg))
}

// Notices drains every pending notice, oldest first.
func Notices(c echo.Context) []string {
	var out []string
	if sess, err := session.Get(SessionName, c); err == nil {
		if flashes := sess.Flashes(); len(flashes) > 0 {
			for _, f := range flashes {
				if s, ok := f.(string); ok {
					out = append(out, s)
				}
			}
			_ = sess.Save(c.Request(), c.Response())
		}
	}
	if pending, _ := c.Get(noticesKey).([]string); len(pending) > 0 {
		out = append(out, pending...)
		c.Set(noticesKey, nil)
	}
	return out
}
