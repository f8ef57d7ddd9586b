package rest

import (
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/kpi-portal/internal/auth"
	"github.com/frahmantamala/kpi-portal/internal/comment"
	"github.com/frahmantamala/kpi-portal/internal/dashboard"
	"github.com/frahmantamala/kpi-portal/internal/evaluation"
	"github.com/frahmantamala/kpi-portal/internal/feedback"
	"github.com/frahmantamala/kpi-portal/internal/goal"
	"github.com/frahmantamala/kpi-portal/internal/message"
	"github.com/frahmantamala/kpi-portal/internal/profile"
	"github.com/frahmantamala/kpi-portal/internal/transport/middleware"
	"github.com/frahmantamala/kpi-portal/internal/transport/swagger"
	"github.com/frahmantamala/kpi-portal/internal/user"
	"github.com/frahmantamala/kpi-portal/internal/workgroup"
)

type Handlers struct {
	Health     *HealthHandler
	Auth       *auth.Handler
	RBAC       *auth.RBACAuthorization
	User       *user.Handler
	Workgroup  *workgroup.Handler
	Evaluation *evaluation.Handler
	Feedback   *feedback.Handler
	Message    *message.Handler
	Comment    *comment.Handler
	Profile    *profile.Handler
	Goal       *goal.Handler
	Dashboard  *dashboard.Handler
	Docs       *swagger.Docs
}

type Options struct {
	AllowedOrigins string
	UploadDir      string
	UploadPrefix   string
}

func NewRouter(h Handlers, opts Options) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.Logging)
	router.Use(middleware.Recovery)
	router.Use(middleware.CORS(opts.AllowedOrigins))

	router.Get("/health", h.Health.Check)
	router.Get("/ping", h.Health.Ping)

	if h.Docs != nil {
		router.Get("/openapi.yml", h.Docs.ServeYAML)
		router.Get("/openapi.json", h.Docs.ServeJSON)
		router.Handle("/swagger/*", swagger.UI())
	}

	if opts.UploadDir != "" {
		prefix := opts.UploadPrefix
		files := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(opts.UploadDir)))
		router.Handle(prefix+"/*", noDirectoryListing(files))
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/login", h.Auth.Login)
			ar.Post("/refresh", h.Auth.RefreshToken)
			ar.Post("/logout", h.Auth.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			pr.Route("/admin", func(ad chi.Router) {
				ad.Group(func(ur chi.Router) {
					ur.Use(h.RBAC.RequireAction(auth.ActionManageUsers))
					ur.Get("/users", h.User.ListUsers)
					ur.Post("/users", h.User.CreateUser)
					ur.Put("/users", h.User.UpdateUser)
					ur.Delete("/users", h.User.DeleteUser)
				})
				ad.With(h.RBAC.RequireAction(auth.ActionUpdateRoles)).
					Post("/roles/update", h.User.UpdateRoles)

				ad.Group(func(wr chi.Router) {
					wr.Use(h.RBAC.RequireAction(auth.ActionManageWorkgroups))
					wr.Get("/workgroups", h.Workgroup.ListWorkgroups)
					wr.Post("/workgroups", h.Workgroup.CreateWorkgroup)
					wr.Put("/workgroups", h.Workgroup.UpdateWorkgroup)
					wr.Delete("/workgroups", h.Workgroup.DeleteWorkgroup)
					wr.Post("/workgroups/members", h.Workgroup.AddMember)
					wr.Put("/workgroups/members", h.Workgroup.UpdateMember)
					wr.Delete("/workgroups/members", h.Workgroup.RemoveMember)
				})

				ad.With(h.RBAC.RequireAction(auth.ActionCreateGoal)).
					Post("/goals/create", h.Goal.CreateGoal)
				ad.With(h.RBAC.RequireAction(auth.ActionCreateTask)).
					Post("/tasks/create", h.Goal.CreateTask)
				ad.With(h.RBAC.RequireAction(auth.ActionViewDashboard)).
					Get("/dashboard", h.Dashboard.Stats)
			})

			pr.Route("/evaluations", func(er chi.Router) {
				er.Post("/strategist", h.Evaluation.SubmitStrategistEvaluation)
				er.Get("/strategist", h.Evaluation.ListStrategistEvaluations)
				er.Get("/strategist/mine", h.Evaluation.ListOwnStrategistEvaluations)
				er.Post("/writer", h.Evaluation.SubmitWriterEvaluation)
				er.Get("/writer", h.Evaluation.ListWriterEvaluations)
				er.Get("/writer/mine", h.Evaluation.ListOwnWriterEvaluations)
			})

			pr.Post("/feedback/submit", h.Feedback.Submit)
			pr.Get("/feedback", h.Feedback.List)
			pr.Get("/feedback/workgroups", h.Feedback.EligibleWorkgroups)

			pr.Route("/messages", func(mr chi.Router) {
				mr.Post("/send", h.Message.Send)
				mr.Post("/mark-read", h.Message.MarkRead)
				mr.Get("/inbox", h.Message.Inbox)
				mr.Get("/sent", h.Message.Sent)
				mr.Get("/unread-count", h.Message.UnreadCount)
			})

			pr.Post("/comments/create", h.Comment.Create)
			pr.Get("/comments", h.Comment.List)

			pr.Route("/profile", func(pf chi.Router) {
				pf.Post("/update", h.Profile.Update)
				pf.Post("/change-password", h.Profile.ChangePassword)
				pf.Post("/upload-image", h.Profile.UploadImage)
				pf.Post("/delete-image", h.Profile.DeleteImage)
			})

			pr.Get("/goals", h.Goal.ListGoals)
			pr.Get("/tasks", h.Goal.ListTasks)
			pr.Post("/tasks/update-status", h.Goal.UpdateTaskStatus)
		})
	})

	return router
}

func noDirectoryListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || r.URL.Path[len(r.URL.Path)-1] == '/' {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
