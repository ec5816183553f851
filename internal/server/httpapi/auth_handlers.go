package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/studiobook/internal/server/models"
	"github.com/dmitrijs2005/studiobook/internal/server/services"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	PhoneNumber string `json:"phoneNumber"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	DisplayName string `json:"displayName"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type googleRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

type sendOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	DevOTP  string `json:"devOTP,omitempty"`
}

type checkEmailResponse struct {
	Success   bool `json:"success"`
	Available bool `json:"available"`
}

type meResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) session(w http.ResponseWriter, r *http.Request, status int, sess *services.Session, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, status, authResponse{Success: true, Token: sess.Token, User: sess.User})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, &req) {
		return
	}
	sess, err := s.auth.Register(r.Context(), services.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		PhoneNumber: req.PhoneNumber,
	})
	s.session(w, r, http.StatusCreated, sess, err)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decode(w, r, &req) {
		return
	}
	sess, err := s.auth.Login(r.Context(), req.Email, req.Password)
	s.session(w, r, http.StatusOK, sess, err)
}

func (s *Server) handleCheckEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decode(w, r, &req) {
		return
	}
	available, err := s.auth.CheckEmail(r.Context(), req.Email)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checkEmailResponse{Success: true, Available: available})
}

func (s *Server) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decode(w, r, &req) {
		return
	}
	code, err := s.auth.SendEmailOTP(r.Context(), req.Email)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := sendOTPResponse{Success: true, Message: "OTP sent to your email"}
	if s.devMode {
		resp.DevOTP = code
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !decode(w, r, &req) {
		return
	}
	sess, err := s.auth.VerifyEmailOTP(r.Context(), services.SignupInput{
		Email:       req.Email,
		OTP:         req.OTP,
		DisplayName: req.DisplayName,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	s.session(w, r, http.StatusCreated, sess, err)
}

func (s *Server) handleGoogle(w http.ResponseWriter, r *http.Request) {
	var req googleRequest
	if !decode(w, r, &req) {
		return
	}
	sess, err := s.auth.GoogleAuth(r.Context(), req.Email, req.DisplayName, req.PhotoURL)
	s.session(w, r, http.StatusOK, sess, err)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, meResponse{Success: true, User: userFrom(r.Context())})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), claimsFrom(r.Context())); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Logged out successfully"})
}
