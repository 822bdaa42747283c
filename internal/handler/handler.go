package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/hs-nautilus/watchbill/backend/internal/config"
	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	"github.com/hs-nautilus/watchbill/backend/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		// 花名册只有排班员和管理员能改，所有登录用户都能看
		planners := []domain.Role{domain.RolePlanner, domain.RoleAdmin}
		r.Route("/personnel", func(r chi.Router) {
			r.With(h.RequiredRole(planners)).Post("/", h.CreatePerson)
			r.Get("/", h.GetAllPersonnel)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.person)
				r.Get("/", h.GetPerson)
				r.With(h.RequiredRole(planners)).Patch("/", h.UpdatePerson)
				r.With(h.RequiredRole(planners)).Delete("/", h.DeletePerson)
			})
		})

		r.Route("/leave-records", func(r chi.Router) {
			r.With(h.RequiredRole(planners)).Post("/", h.CreateLeaveRecord)
			r.Get("/", h.GetLeaveRecords)
			r.With(h.RequiredRole(planners)).Delete("/{id}", h.DeleteLeaveRecord)
		})

		r.Route("/unavailability-entries", func(r chi.Router) {
			r.With(h.RequiredRole(planners)).Post("/", h.CreateUnavailabilityEntry)
			r.Get("/", h.GetUnavailabilityEntries)
			r.With(h.RequiredRole(planners)).Delete("/{id}", h.DeleteUnavailabilityEntry)
		})

		r.Route("/preference-entries", func(r chi.Router) {
			r.With(h.RequiredRole(planners)).Post("/", h.CreatePreferenceEntry)
			r.Get("/", h.GetPreferenceEntries)
			r.With(h.RequiredRole(planners)).Delete("/{id}", h.DeletePreferenceEntry)
		})

		r.Route("/calendars/{year}/{month}", func(r chi.Router) {
			r.Use(h.monthParams)
			r.With(h.RequiredRole(planners)).Put("/", h.UpsertMonthCalendar)
			r.Get("/", h.GetMonthCalendar)
		})

		r.Route("/watch-bills/{year}/{month}", func(r chi.Router) {
			r.Use(h.monthParams)
			r.Get("/", h.GetWatchBill)
			r.With(h.RequiredRole(planners)).Post("/generate", h.GenerateWatchBill)
			r.With(h.RequiredRole(planners)).Post("/publish", h.PublishWatchBill)
		})
	})
}
