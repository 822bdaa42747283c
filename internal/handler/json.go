package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes 请求体上限，排班相关的请求体都很小，1MB 足够
const maxBodyBytes = 1 << 20

// response 统一的响应信封，业务失败也返回 200，由 success 字段区分
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) logServerError(r *http.Request, err error) {
	slog.Error("服务器内部错误", "method", r.Method, "path", r.URL.Path, "error", err)
}

// decodeJSON 解析请求体，未知字段直接拒绝，避免客户端字段拼写错误被悄悄忽略
func (h *Handler) decodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logServerError(r, err)
		http.Error(w, "服务器内部错误", http.StatusInternalServerError)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeJSON(w, r, http.StatusOK, response{Success: false, Message: msg})
}

// invalidRequest 把校验错误翻译成给人看的消息，只报第一条
func (h *Handler) invalidRequest(w http.ResponseWriter, r *http.Request, err error) {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		h.respondError(w, r, validationErrors[0].Translate(h.translator))
		return
	}
	h.respondError(w, r, err.Error())
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, response{
		Success: false,
		Message: "服务器内部错误",
	})
}

func (h *Handler) respondOK(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, response{Success: true, Message: msg, Data: data})
}
