package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	venmo "github.com/venmo-unofficial/venmo-go"
)

// RegisterAccountRoutes wires read-only account endpoints.
func RegisterAccountRoutes(r fiber.Router, a *api) {
	r.Get("/identities", a.identities)
	r.Get("/stories", a.stories)
	r.Get("/people/search", a.personSearch)
}

func (a *api) identities(c *fiber.Ctx) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	identities, err := a.client.Identities(c.UserContext())
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}
	return c.JSON(identities)
}

func (a *api) stories(c *fiber.Ctx) error {
	feedType := venmo.FeedType(c.Query("feedType", string(venmo.FeedMe)))
	externalID := c.Query("externalId")
	if externalID == "" {
		return fiber.NewError(http.StatusBadRequest, "externalId is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	page, err := a.client.Stories(c.UserContext(), feedType, externalID)
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}
	return c.JSON(page)
}

func (a *api) personSearch(c *fiber.Ctx) error {
	name := c.Query("q")
	if name == "" {
		return fiber.NewError(http.StatusBadRequest, "q is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	person, err := a.client.Person(c.UserContext(), name)
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}
	if person == nil {
		return fiber.NewError(http.StatusNotFound, "no person matches the search term")
	}
	return c.JSON(person)
}
