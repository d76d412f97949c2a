package resource

import (
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLConfig 连接 MySQL 所需的配置。反引号转义规则和 MySQL 一致
type MySQLConfig struct {
	User     string
	Password string
	Addr     string
	DBName   string
	Timeout  time.Duration
	Params   map[string]string
}

func (c MySQLConfig) config() *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = c.Addr
	cfg.DBName = c.DBName
	cfg.Timeout = c.Timeout
	cfg.ParseTime = true
	cfg.Params = c.Params
	return cfg
}

// DSN 生成 go-sql-driver/mysql 使用的 DSN
func (c MySQLConfig) DSN() string {
	return c.config().FormatDSN()
}

// OpenMySQL 返回的 *sql.DB 可以直接作为 Executor 使用
func OpenMySQL(c MySQLConfig) (*sql.DB, error) {
	connector, err := mysql.NewConnector(c.config())
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(connector), nil
}
