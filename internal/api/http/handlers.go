package httpapi

import (
	"errors"
	"net/http"

	"log/slog"

	v "github.com/asaskevich/govalidator"
	"github.com/go-chi/render"

	gerr "github.com/qellagg/qella-waitlist/internal/errors"
)

// JoinWaitlistRequest is the signup payload. The service re-validates both
// fields in full; the struct tags only reject obviously empty requests early.
type JoinWaitlistRequest struct {
	Email    string `json:"email" valid:"required"`
	Username string `json:"username" valid:"required"`
}

func (p *JoinWaitlistRequest) Bind(r *http.Request) error {
	_, err := v.ValidateStruct(p)
	return err
}

func (s *Server) joinWaitlist(w http.ResponseWriter, r *http.Request) {
	data := &JoinWaitlistRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidInput())
		return
	}

	if err := s.limiter.CheckRegistration(clientIP(r), data.Email); err != nil {
		render.Render(w, r, ErrRateLimited())
		return
	}

	number, err := s.reg.Register(r.Context(), data.Email, data.Username)
	if err != nil {
		switch {
		case errors.Is(err, gerr.ErrInvalidInput):
			render.Render(w, r, ErrInvalidInput())
		case errors.Is(err, gerr.ErrEmailTaken):
			render.Render(w, r, ErrEmailTaken())
		case errors.Is(err, gerr.ErrUsernameTaken):
			render.Render(w, r, ErrUsernameTaken())
		default:
			slog.Default().ErrorContext(r.Context(), "can't join waitlist",
				slog.String("err", err.Error()),
			)
			render.Render(w, r, ErrServerError())
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.Render(w, r, NewJoinWaitlistResponse(number))
}

func (s *Server) checkEmail(w http.ResponseWriter, r *http.Request) {
	if err := s.limiter.CheckAvailability(clientIP(r)); err != nil {
		render.Render(w, r, ErrRateLimited())
		return
	}

	available, err := s.reg.IsEmailAvailable(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't check email availability",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrServerError())
		return
	}

	render.Render(w, r, NewAvailabilityResponse(available))
}

func (s *Server) checkUsername(w http.ResponseWriter, r *http.Request) {
	if err := s.limiter.CheckAvailability(clientIP(r)); err != nil {
		render.Render(w, r, ErrRateLimited())
		return
	}

	available, err := s.reg.IsUsernameAvailable(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't check username availability",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrServerError())
		return
	}

	render.Render(w, r, NewAvailabilityResponse(available))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, "ok")
}
