package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/fyerfyer/fyer-resmodel/logger"
	"github.com/fyerfyer/fyer-resmodel/middleware/accesslog"
	"github.com/fyerfyer/fyer-resmodel/middleware/opentracing"
	"github.com/fyerfyer/fyer-resmodel/middleware/prometheus"
	"github.com/fyerfyer/fyer-resmodel/resource"
)

// User 示例模型
type User struct {
	ID       int64
	NickName string `orm:"column_name:nick"`
	Email    string
}

func main() {
	addr := flag.String("addr", "127.0.0.1:3306", "mysql address")
	dbName := flag.String("db", "example", "database name")
	user := flag.String("user", "root", "mysql user")
	flag.Parse()

	l := setupLogger()

	db, err := resource.OpenMySQL(resource.MySQLConfig{
		User:     *user,
		Password: os.Getenv("MYSQL_PASSWORD"),
		Addr:     *addr,
		DBName:   *dbName,
	})
	if err != nil {
		l.Error("Open mysql failed", logger.FieldError(err))
		os.Exit(1)
	}
	defer db.Close()

	metrics := &prometheus.MiddlewareBuilder{
		NameSpace: "example",
		SubSystem: "resource",
		Name:      "statement_duration_us",
		Help:      "statement latency in microseconds",
	}
	tracing := &opentracing.MiddlewareBuilder{}

	users, err := resource.FromStruct(&User{},
		resource.WithLogger(l),
		resource.WithExecutor(db),
		resource.WithMiddlewares(
			accesslog.NewWithConfig(&accesslog.Config{Logger: l, SlowThreshold: accesslog.DefaultConfig().SlowThreshold}),
			metrics.Build(),
			tracing.Build(),
		),
	)
	if err != nil {
		l.Error("Build resource model failed", logger.FieldError(err))
		os.Exit(1)
	}

	if err := run(context.Background(), users, l); err != nil {
		l.Error("Example failed", logger.FieldError(err))
		os.Exit(1)
	}
}

func setupLogger() logger.Logger {
	var out io.Writer = os.Stdout
	// 同时写入文件，打不开时只输出到控制台
	logFile, err := os.OpenFile("example.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err == nil {
		out = io.MultiWriter(os.Stdout, logFile)
	}
	l := logger.New(logger.WithLevel(logger.DebugLevel), logger.WithOutput(out))
	logger.SetDefault(l)
	if err != nil {
		l.Warn("Unable to create log file", logger.FieldError(err))
	}
	return l
}

func run(ctx context.Context, users *resource.ResourceModel, l logger.Logger) error {
	_, err := users.Insert(ctx,
		resource.Record{resource.Set("NickName", "Tom"), resource.Set("Email", "tom@example.com")},
		resource.Record{resource.Set("NickName", "Jerry"), resource.Set("Email", "jerry@example.com")},
	)
	if err != nil {
		return err
	}

	_, err = users.Update(ctx,
		resource.ChangeSet{resource.Set("Email", "tom@example.org")},
		resource.Ref("NickName").Eq("Tom"),
	)
	if err != nil {
		return err
	}

	rows, err := users.Select(ctx, resource.Criteria{
		Where:   resource.Or(resource.Ref("NickName").Like("T%"), resource.Ref("Email").IsNull()),
		OrderBy: []resource.OrderBy{resource.Desc("ID")},
		Limit:   10,
	})
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.NickName, &u.Email); err != nil {
			return err
		}
		l.Info("User loaded", logger.Any("id", u.ID), logger.String("nick", u.NickName))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	_, err = users.Delete(ctx, resource.Ref("ID").In(1, 2))
	return err
}
