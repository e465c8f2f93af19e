package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"callpilot/campaign"
	"callpilot/queue"
	"callpilot/utils"
)

type CampaignController struct {
	Queue    *queue.Builder
	Executor *campaign.Executor
	Logger   *log.Logger
}

func NewCampaignController(qb *queue.Builder, ex *campaign.Executor, logger *log.Logger) *CampaignController {
	return &CampaignController{
		Queue:    qb,
		Executor: ex,
		Logger:   logger,
	}
}

// StartCampaign builds the calling queue and kicks off a background run
func (cc *CampaignController) StartCampaign(c *fiber.Ctx) error {
	input := struct {
		MaxCalls          int    `json:"max_calls" validate:"omitempty,min=1,max=500"`
		PrioritizeBy      string `json:"prioritize_by"`
		DelayBetweenCalls int    `json:"delay_between_calls" validate:"omitempty,min=0,max=3600"` // seconds
	}{
		MaxCalls:          10,
		PrioritizeBy:      "new",
		DelayBetweenCalls: 30,
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	customers, err := cc.Queue.Build(input.MaxCalls, input.PrioritizeBy)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to build calling queue", err)
	}
	if len(customers) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No customers found to call", nil)
	}

	delay := time.Duration(input.DelayBetweenCalls) * time.Second
	camp, err := cc.Executor.Start(customers, delay)
	if err != nil {
		if errors.Is(err, campaign.ErrAlreadyRunning) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Campaign already running", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to start campaign", err)
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id":   camp.ID,
		"customers":     camp.Total,
		"prioritize_by": input.PrioritizeBy,
		"delay_seconds": input.DelayBetweenCalls,
	}).Info("Campaign started")

	return utils.MessageResponse(c, fmt.Sprintf("Campaign started with %d customers", camp.Total))
}

// StopCampaign requests cancellation of the running campaign. Idempotent.
func (cc *CampaignController) StopCampaign(c *fiber.Ctx) error {
	cc.Executor.Stop()
	logrus.Info("Campaign stop requested")
	return utils.MessageResponse(c, "Campaign stopped")
}

// CampaignStatus returns a snapshot of the current campaign's progress
func (cc *CampaignController) CampaignStatus(c *fiber.Ctx) error {
	return c.JSON(cc.Executor.Status())
}

// CampaignResults returns the per-attempt results of the current campaign
func (cc *CampaignController) CampaignResults(c *fiber.Ctx) error {
	return c.JSON(cc.Executor.Results())
}
