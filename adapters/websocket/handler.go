package websocket

import (
	"github.com/labstack/echo/v4"
)

// Handler upgrades "/ws" requests and keeps the connection registered for
// wall broadcasts until it closes.
func (s *Server) Handler(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	member, _ := c.Get("family_member").(string)

	client := NewClient(conn, member)
	s.hub.Register(client)
	client.Run()

	defer s.hub.Unregister(client)

	<-client.Context().Done()

	return nil
}
