package validate

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
)

// JSONLResult — статистика валидации потока JSONL.
type JSONLResult struct {
	ValidLinesCount   int
	InvalidLinesCount int
}

// ValidatePayload — оборачивает тело в сообщение консьюмера и валидирует его.
func ValidatePayload(ctx context.Context, validator ports.MessageValidator, consumer string, raw []byte) (*domain.Message, error) {
	msg := &domain.Message{
		ID:         uuid.NewString(),
		Consumer:   consumer,
		Payload:    raw,
		ReceivedAt: time.Now().UTC(),
	}
	if err := validator.Validate(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ValidateJSONLStream — читает тела сообщений построчно, валидирует каждое, валидные пишет в writer.
// Пустые строки пропускаются.
func ValidateJSONLStream(ctx context.Context, validator ports.MessageValidator, consumer string, ir io.Reader, ow io.Writer) (JSONLResult, error) {
	var res JSONLResult

	scanner := bufio.NewScanner(ir)
	// запас на большие строки
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(strings.TrimSpace(string(lineBytes))) == 0 {
			continue
		}

		if _, err := ValidatePayload(ctx, validator, consumer, lineBytes); err != nil {
			res.InvalidLinesCount++
			// не возвращаем ошибку — просто пропускаем невалидную строку
			continue
		}

		if _, err := ow.Write(lineBytes); err != nil {
			return res, fmt.Errorf("write valid line: %w", err)
		}
		if _, err := ow.Write([]byte("\n")); err != nil {
			return res, fmt.Errorf("write newline: %w", err)
		}
		res.ValidLinesCount++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}
