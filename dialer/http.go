package dialer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/valyala/fasthttp"

	"callpilot/models"
)

// VoicePipelineDialer hands the call to an external voice pipeline over
// HTTP. The pipeline owns the actual telephony session and returns the
// customer's reply once the conversation ends.
type VoicePipelineDialer struct {
	Endpoint  string
	AgentName string
	Timeout   time.Duration
	Logger    *log.Logger

	client *fasthttp.Client
}

func NewVoicePipelineDialer(endpoint, agentName string, timeout time.Duration, logger *log.Logger) *VoicePipelineDialer {
	return &VoicePipelineDialer{
		Endpoint:  endpoint,
		AgentName: agentName,
		Timeout:   timeout,
		Logger:    logger,
		client:    &fasthttp.Client{},
	}
}

type pipelineRequest struct {
	Phone        string `json:"phone"`
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	AgentName    string `json:"agent_name"`
	Pitch        string `json:"pitch"`
}

type pipelineResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error"`
}

// PlaceCall posts the call request to the pipeline and waits for the
// conversation result. The wait is bounded by ctx and by Timeout,
// whichever is shorter.
func (vd *VoicePipelineDialer) PlaceCall(ctx context.Context, customer *models.Customer) (string, error) {
	body, err := json.Marshal(pipelineRequest{
		Phone:        customer.Phone,
		Name:         customer.Name,
		BusinessName: customer.BusinessName,
		AgentName:    vd.AgentName,
		Pitch:        BuildPitch(vd.AgentName, customer),
	})
	if err != nil {
		return "", fmt.Errorf("encoding call request: %w", err)
	}

	timeout := vd.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(vd.Endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	vd.Logger.Printf("Placing call to %s via voice pipeline %s", customer.Phone, vd.Endpoint)
	if err := vd.client.DoTimeout(req, resp, timeout); err != nil {
		return "", fmt.Errorf("voice pipeline call to %s: %w", customer.Phone, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("voice pipeline returned status %d for %s", resp.StatusCode(), customer.Phone)
	}

	var result pipelineResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("decoding pipeline response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("voice pipeline error for %s: %s", customer.Phone, result.Error)
	}

	return result.Reply, nil
}
