package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mkvist/shelfmark/internal/testinfra"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var dbType string
	flag.StringVar(&dbType, "t", "mariadb", "database type: mariadb or postgres")
	flag.Parse()

	usage := `
Run a throwaway shelfmark database container for local development.

Usage:

devdb [-h] [-f ENV_FILE_PATH] [-t DB_TYPE]

ENV_FILE_PATH: path to the .env file
DB_TYPE: mariadb (default) or postgres

example
  devdb -t postgres -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	}

	ctx := context.Background()
	if !testinfra.DockerAvailable(ctx) {
		log.Fatal("No docker daemon available")
	}

	var (
		dc  *testinfra.DBContainer
		err error
	)
	switch dbType {
	case "mariadb", "mysql":
		dc, err = testinfra.StartMariaDB(ctx)
	case "postgres":
		dc, err = testinfra.StartPostgres(ctx)
	default:
		log.Fatalf("Unknown database type %q", dbType)
	}
	if err != nil {
		log.Fatalf("Failed to start database container: %v\n", err)
	}

	cfg := dc.Config()
	log.Printf("Database ready. Point the server at it with:")
	log.Printf("  DB_TYPE=%s DB_HOST=%s DB_PORT=%s DB_DATABASE=%s DB_USER=%s DB_PASSWORD=%s",
		cfg.DBType, cfg.DBHost, cfg.DBPort, cfg.DBDatabase, cfg.DBUser, cfg.DBPassword)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating database container...\n", sig)
	if err := dc.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate container: %v", err)
	}
}
