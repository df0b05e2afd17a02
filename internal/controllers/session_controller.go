package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/session"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
	"github.com/Simatwa/house-rental-management-system/internal/validation"
)

type SessionController struct {
	mgr *session.Manager
}

func NewSessionController(mgr *session.Manager) *SessionController {
	return &SessionController{mgr: mgr}
}

func (c *SessionController) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, ToSessionResponse(c.mgr.State()))
}

func (c *SessionController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validation.Check(req); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	if err := c.mgr.Login(r.Context(), req.Username, req.Password); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ToSessionResponse(c.mgr.State()))
}

// LogoutHandler ends the session. The browser is expected to follow
// Redirect with a full navigation.
func (c *SessionController) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	c.mgr.Logout()
	utils.RespondWithJSON(w, http.StatusOK, dtos.LogoutResponse{
		SessionResponse: ToSessionResponse(c.mgr.State()),
		Redirect:        utils.RootPath,
	})
}

func ToSessionResponse(st session.State) dtos.SessionResponse {
	resp := dtos.SessionResponse{
		IsAuthenticated: st.IsAuthenticated,
		User:            st.User,
		Loading:         st.Loading,
	}
	if st.Error != "" {
		resp.Error = utils.Ptr(st.Error)
	}
	return resp
}
