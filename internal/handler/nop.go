package handler

import (
	"context"

	"github.com/Gunvolt24/consumer_handler/internal/ports"
)

var (
	_ ports.Logger  = NopLogger{}
	_ ports.Session = NopSession{}
)

// NopLogger — логгер-заглушка для консьюмеров без логирования.
type NopLogger struct{}

func (NopLogger) Infof(context.Context, string, ...any)  {}
func (NopLogger) Warnf(context.Context, string, ...any)  {}
func (NopLogger) Errorf(context.Context, string, ...any) {}
func (NopLogger) Errorw(context.Context, string, ...any) {}

// NopSession — сессия для консьюмеров без хранилища: очищать нечего, всегда пригодна.
type NopSession struct{}

func (NopSession) Clear(context.Context)         {}
func (NopSession) IsUsable(context.Context) bool { return true }
