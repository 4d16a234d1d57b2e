package main

// Run one screening pass for a job from the command line:
//   go run ./cmd/scorejob -job <job-id>

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"screening-backend/internal/bootstrap"
	"screening-backend/internal/shared/config"
)

func main() {
	jobID := flag.String("job", "", "job ID to screen")
	flag.Parse()

	if *jobID == "" {
		log.Print("usage: scorejob -job <job-id>")
		os.Exit(2)
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer func() {
		if app.DB != nil {
			app.DB.Close()
		}
	}()

	summary, err := app.JobsService.RunScreening(ctx, *jobID)
	if err != nil {
		log.Fatalf("screening failed job=%s: %v", *jobID, err)
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	os.Stdout.Write(append(out, '\n'))
}
