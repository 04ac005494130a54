package deps

import (
	"context"
	"sync"
	"taskminder/internal/config"
	"taskminder/internal/core/domain/category"
	dl "taskminder/internal/core/domain/logging"
	drl "taskminder/internal/core/domain/rate_limiter"
	"taskminder/internal/core/domain/reminder"
	"taskminder/internal/core/domain/task"
	"taskminder/internal/core/domain/user"
	dbcategory "taskminder/internal/db/category"
	dbreminder "taskminder/internal/db/reminder"
	dbtask "taskminder/internal/db/task"
	dbuser "taskminder/internal/db/user"
	"taskminder/internal/implementations/dispatcher"
	"taskminder/internal/implementations/logging"
	passwordhasher "taskminder/internal/implementations/password_hasher"
	ratelimiter "taskminder/internal/implementations/rate_limiter"
	tokengenerator "taskminder/internal/implementations/token_generator"
	"taskminder/internal/rabbitmq"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	UserRepository     user.UserRepository
	SessionRepository  user.SessionRepository
	CategoryRepository category.Repository
	TaskRepository     task.Repository
	ReminderRepository reminder.Repository

	RateLimiter drl.RateLimiter

	PasswordHasher        user.PasswordHasher
	SessionTokenGenerator user.SessionTokenGenerator

	Dispatcher reminder.Dispatcher
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()

	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)
	deps.CategoryRepository = dbcategory.NewPgxRepository(deps.DB)
	deps.TaskRepository = dbtask.NewPgxRepository(deps.DB)
	deps.ReminderRepository = dbreminder.NewPgxRepository(deps.DB)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.SessionTokenGenerator = tokengenerator.NewGenerator()

	closeDispatcher := deps.initDispatcher()

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closeDispatcher,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Deps) initDispatcher() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	err = rabbitmqChannel.ExchangeDeclare(
		deps.Config.RabbitmqNotificationExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}
	_, err = rabbitmqChannel.QueueDeclare(deps.Config.RabbitmqNotificationQueue, true, false, false, false, nil)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}
	if err := rabbitmqChannel.QueueBind(
		deps.Config.RabbitmqNotificationQueue,
		deps.Config.RabbitmqNotificationQueue,
		deps.Config.RabbitmqNotificationExchange,
		false,
		nil,
	); err != nil {
		deps.Logger.Error(context.Background(), "Could not bind queue to RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}

	deps.Dispatcher = dispatcher.New(
		deps.Logger,
		deps.TaskRepository,
		deps.CategoryRepository,
		deps.UserRepository,
		map[reminder.NotificationMethod]reminder.NotificationSender{
			reminder.MethodEmail:    dispatcher.NewSes(deps.AwsConfig, deps.Config.AwsEmailSender),
			reminder.MethodInternal: dispatcher.NewInternal(deps.SseServer),
			reminder.MethodPush: dispatcher.NewPush(
				rabbitmqChannel,
				deps.Config.RabbitmqNotificationExchange,
				deps.Config.RabbitmqNotificationQueue,
			),
		},
		deps.Now,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down notification dispatcher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Notification dispatcher shut down.")
	}
}
