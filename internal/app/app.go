package app

import (
	"net/http"
	"taskminder/internal/app/deps"
	"taskminder/internal/app/services"
	"taskminder/internal/http/handlers/auth"
	login "taskminder/internal/http/handlers/auth/log_in"
	logout "taskminder/internal/http/handlers/auth/log_out"
	me "taskminder/internal/http/handlers/auth/me"
	signup "taskminder/internal/http/handlers/auth/sign_up"
	createcategory "taskminder/internal/http/handlers/categories/create_category"
	deletecategory "taskminder/internal/http/handlers/categories/delete_category"
	listusercategories "taskminder/internal/http/handlers/categories/list_user_categories"
	"taskminder/internal/http/handlers/events"
	createreminder "taskminder/internal/http/handlers/reminders/create_reminder"
	deletereminder "taskminder/internal/http/handlers/reminders/delete_reminder"
	listtaskreminders "taskminder/internal/http/handlers/reminders/list_task_reminders"
	createtask "taskminder/internal/http/handlers/tasks/create_task"
	deletetask "taskminder/internal/http/handlers/tasks/delete_task"
	listcategorytasks "taskminder/internal/http/handlers/tasks/list_category_tasks"
	listupcomingtasks "taskminder/internal/http/handlers/tasks/list_upcoming_tasks"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signup.New(s.SignUp))
	authRouter.Method(http.MethodPost, "/login", login.New(s.LogIn))
	authRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut))
	authRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))

	categoriesRouter := chi.NewRouter()
	categoriesRouter.Use(auth.SetAuthTokenToContext)
	categoriesRouter.Method(http.MethodPost, "/", createcategory.New(s.CreateCategory))
	categoriesRouter.Method(http.MethodGet, "/", listusercategories.New(s.ListUserCategories))
	categoriesRouter.Method(
		http.MethodDelete,
		"/{categoryID:[0-9]+}",
		deletecategory.New(s.DeleteCategory),
	)
	categoriesRouter.Method(
		http.MethodGet,
		"/{categoryID:[0-9]+}/tasks",
		listcategorytasks.New(s.ListCategoryTasks),
	)

	tasksRouter := chi.NewRouter()
	tasksRouter.Use(auth.SetAuthTokenToContext)
	tasksRouter.Method(http.MethodPost, "/", createtask.New(s.CreateTask))
	tasksRouter.Method(http.MethodGet, "/upcoming", listupcomingtasks.New(s.ListUpcomingTasks))
	tasksRouter.Method(http.MethodDelete, "/{taskID:[0-9]+}", deletetask.New(s.DeleteTask))
	tasksRouter.Method(
		http.MethodPost,
		"/{taskID:[0-9]+}/reminders",
		createreminder.New(s.CreateReminder),
	)
	tasksRouter.Method(
		http.MethodGet,
		"/{taskID:[0-9]+}/reminders",
		listtaskreminders.New(s.ListTaskReminders),
	)

	remindersRouter := chi.NewRouter()
	remindersRouter.Use(auth.SetAuthTokenToContext)
	remindersRouter.Method(http.MethodDelete, "/{reminderID:[0-9]+}", deletereminder.New(s.DeleteReminder))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/categories", categoriesRouter)
	router.Mount("/tasks", tasksRouter)
	router.Mount("/reminders", remindersRouter)
	router.Method(
		http.MethodGet,
		"/events",
		events.New(deps.Logger, deps.SseServer, s.GetUserBySessionToken),
	)

	return &http.Server{
		Handler: router,
		Addr:    deps.Config.HTTPAddress,
	}
}
