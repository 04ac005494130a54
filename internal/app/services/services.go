package services

import (
	"taskminder/internal/app/deps"
	drl "taskminder/internal/core/domain/rate_limiter"
	"taskminder/internal/core/services"
	"taskminder/internal/core/services/auth"
	createcategory "taskminder/internal/core/services/create_category"
	createreminder "taskminder/internal/core/services/create_reminder"
	createtask "taskminder/internal/core/services/create_task"
	deletecategory "taskminder/internal/core/services/delete_category"
	deletereminder "taskminder/internal/core/services/delete_reminder"
	deletetask "taskminder/internal/core/services/delete_task"
	dispatchduereminders "taskminder/internal/core/services/dispatch_due_reminders"
	getuserbysessiontoken "taskminder/internal/core/services/get_user_by_session_token"
	listcategorytasks "taskminder/internal/core/services/list_category_tasks"
	listtaskreminders "taskminder/internal/core/services/list_task_reminders"
	listupcomingtasks "taskminder/internal/core/services/list_upcoming_tasks"
	listusercategories "taskminder/internal/core/services/list_user_categories"
	login "taskminder/internal/core/services/log_in"
	logout "taskminder/internal/core/services/log_out"
	ratelimiting "taskminder/internal/core/services/rate_limiting"
	signup "taskminder/internal/core/services/sign_up"
)

type Services struct {
	SignUp                services.Service[signup.Input, signup.Result]
	LogIn                 services.Service[login.Input, login.Result]
	LogOut                services.Service[logout.Input, logout.Result]
	GetUserBySessionToken services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]

	CreateCategory     services.Service[createcategory.Input, createcategory.Result]
	ListUserCategories services.Service[listusercategories.Input, listusercategories.Result]
	DeleteCategory     services.Service[deletecategory.Input, deletecategory.Result]

	CreateTask        services.Service[createtask.Input, createtask.Result]
	ListCategoryTasks services.Service[listcategorytasks.Input, listcategorytasks.Result]
	ListUpcomingTasks services.Service[listupcomingtasks.Input, listupcomingtasks.Result]
	DeleteTask        services.Service[deletetask.Input, deletetask.Result]

	CreateReminder    services.Service[createreminder.Input, createreminder.Result]
	ListTaskReminders services.Service[listtaskreminders.Input, listtaskreminders.Result]
	DeleteReminder    services.Service[deletereminder.Input, deletereminder.Result]

	DispatchDueReminders services.Service[dispatchduereminders.Input, dispatchduereminders.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUp = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		signup.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.Now,
		),
	)
	s.LogIn = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		login.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
			deps.SessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.GetUserBySessionToken = getuserbysessiontoken.New(
		deps.Logger,
		deps.SessionRepository,
	)

	s.CreateCategory = auth.WithAuthentication(
		deps.SessionRepository,
		createcategory.New(
			deps.Logger,
			deps.CategoryRepository,
			deps.Now,
		),
	)
	s.ListUserCategories = auth.WithAuthentication(
		deps.SessionRepository,
		listusercategories.New(
			deps.Logger,
			deps.CategoryRepository,
		),
	)

	s.DeleteCategory = auth.WithAuthentication(
		deps.SessionRepository,
		deletecategory.New(
			deps.Logger,
			deps.CategoryRepository,
		),
	)

	s.CreateTask = auth.WithAuthentication(
		deps.SessionRepository,
		createtask.New(
			deps.Logger,
			deps.CategoryRepository,
			deps.TaskRepository,
			deps.Now,
		),
	)
	s.ListCategoryTasks = auth.WithAuthentication(
		deps.SessionRepository,
		listcategorytasks.New(
			deps.Logger,
			deps.CategoryRepository,
			deps.TaskRepository,
		),
	)
	s.ListUpcomingTasks = auth.WithAuthentication(
		deps.SessionRepository,
		listupcomingtasks.New(
			deps.Logger,
			deps.TaskRepository,
			deps.Now,
		),
	)
	s.DeleteTask = auth.WithAuthentication(
		deps.SessionRepository,
		deletetask.New(
			deps.Logger,
			deps.CategoryRepository,
			deps.TaskRepository,
		),
	)

	s.CreateReminder = auth.WithAuthentication(
		deps.SessionRepository,
		createreminder.New(
			deps.Logger,
			deps.CategoryRepository,
			deps.TaskRepository,
			deps.ReminderRepository,
			deps.Now,
		),
	)
	s.ListTaskReminders = auth.WithAuthentication(
		deps.SessionRepository,
		listtaskreminders.New(
			deps.Logger,
			deps.CategoryRepository,
			deps.TaskRepository,
			deps.ReminderRepository,
		),
	)
	s.DeleteReminder = auth.WithAuthentication(
		deps.SessionRepository,
		deletereminder.New(
			deps.Logger,
			deps.CategoryRepository,
			deps.TaskRepository,
			deps.ReminderRepository,
		),
	)

	s.DispatchDueReminders = dispatchduereminders.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.Dispatcher,
		deps.Config.SchedulerLookahead,
		deps.Now,
	)

	return s
}
