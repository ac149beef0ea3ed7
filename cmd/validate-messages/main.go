package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Gunvolt24/consumer_handler/pkg/validate"
)

// CLI-приложение для проверки сообщений до публикации в брокер.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	consumer := flag.String("consumer", "default", "consumer name the messages are addressed to")
	maxPayload := flag.Int("max-payload", validate.DefaultMaxPayload, "max payload size in bytes")
	requireJSON := flag.Bool("require-json", true, "payload must be valid JSON")
	flag.Parse()

	ctx := context.Background()
	validator := validate.NewMessageValidator(
		validate.WithMaxPayload(*maxPayload),
		validate.WithJSONPayload(*requireJSON),
	)

	format := validate.InputFormat(*formatStr)
	path := *inputPath

	// stdin вариант: считаем, что jsonl
	if path == "" {
		path = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	summary, err := validate.ValidateFile(ctx, validator, *consumer, path, format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
}
