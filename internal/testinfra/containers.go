// Package testinfra starts throwaway database containers for integration
// tests and for the devdb command. Containers are named with a uuid so
// parallel runs never collide.
package testinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mkvist/shelfmark/internal/config"
)

const (
	mariadbImage  = "mariadb:11"
	postgresImage = "postgres:16-alpine"

	dbName     = "shelfmark"
	dbUser     = "shelfmark"
	dbPassword = "shelfmark-test"
)

// DBContainer is a running database container plus the coordinates the
// store needs to reach it from the host.
type DBContainer struct {
	Container testcontainers.Container
	DBType    string
	Host      string
	Port      nat.Port
}

// Terminate stops and removes the container.
func (dc *DBContainer) Terminate(ctx context.Context) error {
	if dc.Container == nil {
		return nil
	}
	return dc.Container.Terminate(ctx)
}

// Config returns store configuration pointing at the container.
func (dc *DBContainer) Config() *config.Config {
	return &config.Config{
		Port:              "3000",
		DBType:            dc.DBType,
		DBHost:            dc.Host,
		DBPort:            dc.Port.Port(),
		DBDatabase:        dbName,
		DBUser:            dbUser,
		DBPassword:        dbPassword,
		DBConnectionLimit: 5,
	}
}

// DockerAvailable reports whether a docker daemon answers on this host.
// Integration tests skip themselves when it returns false.
func DockerAvailable(ctx context.Context) bool {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false
	}
	defer cli.Close()

	_, err = cli.Ping(ctx)
	return err == nil
}

// StartMariaDB starts a MariaDB container and blocks until the server
// accepts real connections, not just TCP.
func StartMariaDB(ctx context.Context) (*DBContainer, error) {
	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return nil, fmt.Errorf("mariadb port: %w", err)
	}

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Name:         "shelfmark-mariadb-" + uuid.New().String(),
			Image:        mariadbImage,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": dbPassword,
				"MYSQL_DATABASE":      dbName,
				"MYSQL_USER":          dbUser,
				"MYSQL_PASSWORD":      dbPassword,
			},
			// Tmpfs keeps the data dir off disk; test databases are
			// disposable and this cuts startup and teardown time.
			HostConfigModifier: func(hc *container.HostConfig) {
				hc.Tmpfs = map[string]string{"/var/lib/mysql": "rw"}
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start mariadb: %w", err)
	}

	dc := &DBContainer{Container: ctr, DBType: "mariadb"}
	if err := dc.resolve(ctx, tcpPort); err != nil {
		_ = dc.Terminate(ctx)
		return nil, err
	}

	if err := waitForMySQL(dc.Host, dc.Port); err != nil {
		_ = dc.Terminate(ctx)
		return nil, err
	}
	return dc, nil
}

// StartPostgres starts a PostgreSQL container. The ready log line appears
// twice because the init scripts restart the server; wait for the second.
func StartPostgres(ctx context.Context) (*DBContainer, error) {
	tcpPort, err := nat.NewPort("tcp", "5432")
	if err != nil {
		return nil, fmt.Errorf("postgres port: %w", err)
	}

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Name:         "shelfmark-postgres-" + uuid.New().String(),
			Image:        postgresImage,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"POSTGRES_DB":       dbName,
				"POSTGRES_USER":     dbUser,
				"POSTGRES_PASSWORD": dbPassword,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	dc := &DBContainer{Container: ctr, DBType: "postgres"}
	if err := dc.resolve(ctx, tcpPort); err != nil {
		_ = dc.Terminate(ctx)
		return nil, err
	}
	return dc, nil
}

func (dc *DBContainer) resolve(ctx context.Context, tcpPort nat.Port) error {
	host, err := dc.Container.Host(ctx)
	if err != nil {
		return fmt.Errorf("container host: %w", err)
	}
	mapped, err := dc.Container.MappedPort(ctx, tcpPort)
	if err != nil {
		return fmt.Errorf("mapped port: %w", err)
	}
	dc.Host = host
	dc.Port = mapped
	return nil
}

// waitForMySQL polls with a real client connection. MariaDB listens on
// its port before authentication is usable.
func waitForMySQL(host string, port nat.Port) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPassword, host, port.Port(), dbName)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("open mysql: %w", err)
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("mariadb not ready after 30s: %w", err)
}
