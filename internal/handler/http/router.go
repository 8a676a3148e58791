package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kerjakita/kerjakita-backend-go/internal/handler/http/middleware"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth        AuthHandler
	Profile     ProfileHandler
	Job         JobHandler
	Application ApplicationHandler
	Contract    ContractHandler
	Interview   InterviewHandler
	Resignation ResignationHandler
	Upload      UploadHandler
}

func NewRouter(jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kerjakita"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Public job board
		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.Job.ListActive)
			r.Get("/{slug}", h.Job.GetBySlug)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/profiles", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireJobseeker)
					r.Post("/jobseeker", h.Profile.SubmitJobseeker)
					r.Get("/jobseeker/my", h.Profile.GetJobseeker)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRecruiter)
					r.Post("/recruiter", h.Profile.SubmitRecruiter)
					r.Get("/recruiter/my", h.Profile.GetRecruiter)
				})
			})

			r.Post("/uploads/{kind}", h.Upload.Upload)

			// Jobseeker side
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireJobseeker)

				r.Route("/applications", func(r chi.Router) {
					r.Post("/", h.Application.Apply)
					r.Get("/my", h.Application.ListMine)
					r.Post("/{id}/withdraw", h.Application.Withdraw)
					r.Delete("/{id}", h.Application.Delete)
				})

				r.Route("/invitations", func(r chi.Router) {
					r.Get("/my", h.Interview.ListMyInvitations)
					r.Get("/{id}", h.Interview.GetInvitation)
					r.Post("/{id}/respond", h.Interview.Respond)
				})

				r.Route("/resignations", func(r chi.Router) {
					r.Post("/", h.Resignation.Submit)
					r.Get("/{id}", h.Resignation.Get)
				})
			})

			// Recruiter side
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRecruiter)

				r.Route("/company", func(r chi.Router) {
					r.Route("/jobs", func(r chi.Router) {
						r.Get("/", h.Job.ListCompanyJobs)
						r.Post("/", h.Job.Create)
						r.Put("/{id}", h.Job.Update)
						r.Delete("/{id}", h.Job.Delete)
						r.Get("/{id}/applications", h.Application.ListForJob)
					})

					r.Patch("/applications/{id}/status", h.Application.UpdateStatus)

					r.Route("/resignations", func(r chi.Router) {
						r.Get("/", h.Resignation.ListCompany)
						r.Get("/{id}", h.Resignation.GetCompany)
						r.Post("/{id}/decide", h.Resignation.Decide)
					})

					r.Route("/interviews", func(r chi.Router) {
						r.Get("/", h.Interview.ListCompanyInterviews)
						r.Post("/", h.Interview.Schedule)
						r.Put("/{id}/reschedule", h.Interview.Reschedule)
						r.Post("/{id}/complete", h.Interview.Complete)
					})

					r.Route("/contracts", func(r chi.Router) {
						r.Get("/applicants", h.Contract.ListAcceptedApplicants)
						r.Get("/stats", h.Contract.Stats)
						r.Route("/batches", func(r chi.Router) {
							r.Get("/", h.Contract.ListBatches)
							r.Post("/", h.Contract.CreateBatch)
							r.Get("/{id}", h.Contract.GetBatch)
							r.Post("/{id}/resubmit", h.Contract.ResubmitBatch)
						})
						r.Route("/workers", func(r chi.Router) {
							r.Get("/", h.Contract.ListWorkers)
							r.Post("/{id}/terminate", h.Contract.TerminateWorker)
						})
					})
				})
			})

			// Admin side
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Route("/admin/contracts", func(r chi.Router) {
					r.Get("/pending", h.Contract.ListPendingBatches)
					r.Get("/pending/count", h.Contract.CountPendingBatches)
					r.Get("/{id}", h.Contract.AdminGetBatch)
					r.Post("/{id}/decide", h.Contract.DecideBatch)
				})
			})
		})
	})

	// Locally stored uploads
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))))

	return r
}
