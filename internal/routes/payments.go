package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	venmo "github.com/venmo-unofficial/venmo-go"
)

// RegisterPaymentRoutes wires the payment pipeline: funding discovery,
// eligibility and submission.
func RegisterPaymentRoutes(r fiber.Router, a *api) {
	r.Get("/funding-instruments", a.fundingInstruments)
	r.Post("/eligibility", a.eligibility)
	r.Post("/payments", a.pay)
}

func (a *api) fundingInstruments(c *fiber.Ctx) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	wallet, err := a.client.FundingInstruments(c.UserContext())
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}
	return c.JSON(wallet)
}

type eligibilityRequest struct {
	TargetID      string `json:"target_id"`
	AmountInCents int64  `json:"amount_in_cents"`
	Action        string `json:"action"`
	Note          string `json:"note"`
}

func (a *api) eligibility(c *fiber.Ctx) error {
	var req eligibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	result, err := a.client.Eligibility(c.UserContext(), venmo.EligibilityInput{
		TargetID:      req.TargetID,
		AmountInCents: req.AmountInCents,
		Action:        venmo.PaymentType(req.Action),
		Note:          req.Note,
	})
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}
	return c.JSON(result)
}

type paymentRequest struct {
	TargetUserID     string `json:"target_user_id"`
	AmountInCents    int64  `json:"amount_in_cents"`
	Audience         string `json:"audience"`
	Note             string `json:"note"`
	Type             string `json:"type"`
	FundingSourceID  string `json:"funding_source_id"`
	EligibilityToken string `json:"eligibility_token"`
}

func (a *api) pay(c *fiber.Ctx) error {
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.client.Pay(c.UserContext(), venmo.PaymentRequest{
		TargetUserID:     req.TargetUserID,
		AmountInCents:    req.AmountInCents,
		Audience:         req.Audience,
		Note:             req.Note,
		Type:             venmo.PaymentType(req.Type),
		FundingSourceID:  req.FundingSourceID,
		EligibilityToken: req.EligibilityToken,
	})
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}

	// The upstream endpoint answers with an empty body; submission is
	// fire-and-confirm via a later stories read.
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"status": "submitted"})
}
