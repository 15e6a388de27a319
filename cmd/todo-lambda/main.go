// Package main is the Lambda entry point. It loads configuration, wires the
// router and hands it to the Lambda runtime.
package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/todos/internal/app"
	"github.com/jacentio/todos/internal/config"
	"github.com/jacentio/todos/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	router, err := app.Router(app.New(cfg, logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: resolving router: %v\n", err)
		os.Exit(1)
	}

	lambda.Start(router.Handle)
}
