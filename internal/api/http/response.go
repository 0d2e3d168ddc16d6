package httpapi

import (
	"net/http"

	"github.com/go-chi/render"
)

// errors

// ErrResponse carries the machine-readable error code the landing page
// switches its messaging on. Only email_taken/username_taken blame a
// specific field.
type ErrResponse struct {
	HTTPStatusCode int `json:"-"`

	ErrorCode string `json:"error"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidInput() render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusBadRequest,
		ErrorCode:      "invalid_input",
	}
}

func ErrEmailTaken() render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusConflict,
		ErrorCode:      "email_taken",
	}
}

func ErrUsernameTaken() render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusConflict,
		ErrorCode:      "username_taken",
	}
}

func ErrServerError() render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusInternalServerError,
		ErrorCode:      "server_error",
	}
}

func ErrRateLimited() render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusTooManyRequests,
		ErrorCode:      "rate_limited",
	}
}

// waitlist

type JoinWaitlistResponse struct {
	WaitlistNumber string `json:"waitlistNumber"`
}

func NewJoinWaitlistResponse(number string) *JoinWaitlistResponse {
	return &JoinWaitlistResponse{WaitlistNumber: number}
}

func (rd *JoinWaitlistResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

func NewAvailabilityResponse(available bool) *AvailabilityResponse {
	return &AvailabilityResponse{Available: available}
}

func (rd *AvailabilityResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
