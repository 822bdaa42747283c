package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) GetAllPersonnel(w http.ResponseWriter, r *http.Request) {
	personnel, err := h.repository.GetAllPersonnel()
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.respondOK(w, r, "获取花名册成功", personnel)
}

// validateWatchFields 军衔和更种的取值带空格和括号，validator 的 oneof 处理不了，这里手动校验
func validateWatchFields(rank domain.Rank, watches ...domain.WatchType) error {
	if _, ok := rank.SeniorityIndex(); !ok {
		return errors.New("未知的军衔")
	}
	for _, w := range watches {
		if w != "" && !w.IsValid() {
			return errors.New("未知的更种")
		}
	}
	return nil
}

func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RegistryNumber string `json:"registryNumber" validate:"required"`
		FullName       string `json:"fullName" validate:"required"`
		Rank           string `json:"rank" validate:"required"`
		Specialty      string `json:"specialty"`
		Duty           string `json:"duty"`
		PrimaryWatch   string `json:"primaryWatch"`
		AlternateWatch string `json:"alternateWatch"`
		AtSeaWatch     string `json:"atSeaWatch"`
	}

	if err := h.decodeJSON(r, &req); err != nil {
		h.invalidRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.invalidRequest(w, r, err)
		return
	}

	p := &domain.Person{
		RegistryNumber: req.RegistryNumber,
		FullName:       req.FullName,
		Rank:           domain.Rank(req.Rank),
		Specialty:      req.Specialty,
		Duty:           domain.Duty(req.Duty),
		PrimaryWatch:   domain.WatchType(req.PrimaryWatch),
		AlternateWatch: domain.WatchType(req.AlternateWatch),
		AtSeaWatch:     domain.WatchType(req.AtSeaWatch),
	}

	if err := validateWatchFields(p.Rank, p.PrimaryWatch, p.AlternateWatch, p.AtSeaWatch); err != nil {
		h.invalidRequest(w, r, err)
		return
	}

	if err := h.repository.CreatePerson(p); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "personnel_registry_number_key":
				h.invalidRequest(w, r, errors.New("登记号已存在"))
			default:
				h.serverError(w, r, err)
			}
		default:
			h.serverError(w, r, err)
		}
		return
	}

	h.respondOK(w, r, "人员创建成功", p)
}

func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	p := r.Context().Value(PersonCtx).(*domain.Person)
	h.respondOK(w, r, "获取人员信息成功", p)
}

func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName       *string `json:"fullName"`
		Rank           *string `json:"rank"`
		Specialty      *string `json:"specialty"`
		Duty           *string `json:"duty"`
		PrimaryWatch   *string `json:"primaryWatch"`
		AlternateWatch *string `json:"alternateWatch"`
		AtSeaWatch     *string `json:"atSeaWatch"`
		IsActive       *bool   `json:"isActive"`
	}

	if err := h.decodeJSON(r, &req); err != nil {
		h.invalidRequest(w, r, err)
		return
	}

	p := r.Context().Value(PersonCtx).(*domain.Person)

	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.Rank != nil {
		p.Rank = domain.Rank(*req.Rank)
	}
	if req.Specialty != nil {
		p.Specialty = *req.Specialty
	}
	if req.Duty != nil {
		p.Duty = domain.Duty(*req.Duty)
	}
	if req.PrimaryWatch != nil {
		p.PrimaryWatch = domain.WatchType(*req.PrimaryWatch)
	}
	if req.AlternateWatch != nil {
		p.AlternateWatch = domain.WatchType(*req.AlternateWatch)
	}
	if req.AtSeaWatch != nil {
		p.AtSeaWatch = domain.WatchType(*req.AtSeaWatch)
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := validateWatchFields(p.Rank, p.PrimaryWatch, p.AlternateWatch, p.AtSeaWatch); err != nil {
		h.invalidRequest(w, r, err)
		return
	}

	if err := h.repository.UpdatePerson(p); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.respondError(w, r, "更新人员信息失败，请重试")
		default:
			h.serverError(w, r, err)
		}
		return
	}

	h.respondOK(w, r, "更新人员信息成功", p)
}

func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	p := r.Context().Value(PersonCtx).(*domain.Person)

	if err := h.repository.DeletePerson(p.ID); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.respondOK(w, r, "删除人员成功", nil)
}
