package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RegisterSessionRoutes wires login and session introspection.
func RegisterSessionRoutes(r fiber.Router, a *api) {
	r.Post("/login", a.login)
	r.Get("/session", a.session)
}

func (a *api) login(c *fiber.Ctx) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.client.Login(c.UserContext()); err != nil {
		a.log.Error("login failed", "error", err)
		return fiber.NewError(statusFor(err), err.Error())
	}
	a.log.Info("login complete", "state", a.client.State().String())

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"state":     a.client.State().String(),
		"device_id": a.client.DeviceID(),
	})
}

func (a *api) session(c *fiber.Ctx) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.client.Session()
	return c.JSON(fiber.Map{
		"state":                  a.client.State().String(),
		"authenticated":          s.Authenticated(),
		"has_device_correlation": s.DeviceCorrelation != "",
	})
}
