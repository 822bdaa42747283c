package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	h.respondOK(w, r, "获取个人信息成功", myInfo)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}

	if err := h.decodeJSON(r, &req); err != nil {
		h.invalidRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.invalidRequest(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(myInfo.PasswordHash), []byte(req.OldPassword)); err != nil {
		h.respondError(w, r, "旧密码错误")
		return
	}
	if req.NewPassword == req.OldPassword {
		h.respondError(w, r, "新密码不能与旧密码相同")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	myInfo.PasswordHash = string(hashedPassword)

	if err := h.repository.UpdateUser(myInfo); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.respondError(w, r, "更新密码失败，请重试")
		default:
			h.serverError(w, r, err)
		}
		return
	}

	h.respondOK(w, r, "更新密码成功", nil)
}
