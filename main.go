package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/stmt-ingest/cmd/ingest"
	"fjacquet/stmt-ingest/cmd/migrate"
	"fjacquet/stmt-ingest/cmd/process"
	"fjacquet/stmt-ingest/cmd/root"
	"fjacquet/stmt-ingest/cmd/validate"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Load environment variables silently first, then set the global log
	// level before any logging happens.
	_ = godotenv.Load()
	configureLogLevel()

	root.Init()
	root.Cmd.AddCommand(process.Cmd)
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
	root.Cmd.AddCommand(migrate.Cmd)
}

// configureLogLevel sets the global logrus level from LOG_LEVEL so that
// loggers created before the config is loaded honor it.
func configureLogLevel() {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
