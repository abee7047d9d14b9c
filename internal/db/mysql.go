package db

import (
	"fmt"
	"net"
	"regexp"
	"slices"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

// AllowedMySQLPorts are the only ports a MySQL backend may use.
var AllowedMySQLPorts = []uint16{3306, 33060}

var mysqlNameRe = regexp.MustCompile(`^[^/?%*:|"<>.]{1,64}$`)

// MySQLBackend configures a MySQL database reached over TCP.
type MySQLBackend struct {
	Database string
	Host     string
	User     string
	Password string
	Port     uint16
}

// NewMySQL returns a MySQL backend.
func NewMySQL(database, host, user, password string, port uint16) *MySQLBackend {
	return &MySQLBackend{
		Database: database,
		Host:     host,
		User:     user,
		Password: password,
		Port:     port,
	}
}

func (b *MySQLBackend) Kind() string   { return "mysql" }
func (b *MySQLBackend) Driver() string { return DriverMySQL }
func (b *MySQLBackend) Name() string   { return b.Database }
func (b *MySQLBackend) sealed()        {}

func (b *MySQLBackend) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = b.User
	cfg.Passwd = b.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(b.Host, strconv.Itoa(int(b.Port)))
	cfg.DBName = b.Database
	// Report matched rather than changed rows so an UPDATE that leaves a row
	// unchanged still counts it, as SQLite does.
	cfg.ClientFoundRows = true
	return cfg.FormatDSN()
}

// Validate requires a filename-safe database name and an allowed port.
func (b *MySQLBackend) Validate() error {
	if b.nameValid() && b.portValid() {
		return nil
	}
	return fmt.Errorf("%w: name %q, port %d", ErrInvalidConfig, b.Database, b.Port)
}

// Repair prompts for every invalid field; all prompts must be confirmed.
func (b *MySQLBackend) Repair(p Prompter) bool {
	prompted, confirmed := false, true

	if !b.nameValid() {
		prompted = true
		name, ok := p.PromptText("Database name", b.Database)
		if ok {
			b.Database = name
		}
		confirmed = confirmed && ok
	}

	if !b.portValid() {
		prompted = true
		port, ok := p.PromptInt("Database port", int(b.Port), 0, 65535, 1)
		if ok && port >= 0 && port <= 65535 {
			b.Port = uint16(port)
		} else {
			ok = false
		}
		confirmed = confirmed && ok
	}

	return prompted && confirmed
}

func (b *MySQLBackend) nameValid() bool {
	return mysqlNameRe.MatchString(b.Database)
}

func (b *MySQLBackend) portValid() bool {
	return slices.Contains(AllowedMySQLPorts, b.Port)
}
