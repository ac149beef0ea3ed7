package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateConsumer = errors.New("consumer already registered")
	ErrDuplicateOverride = errors.New("duplicate consumer configuration")
	ErrUnknownLogger     = errors.New("unknown logger id")
	ErrUnknownSession    = errors.New("unknown session id")
	ErrEmptyName         = errors.New("consumer name is empty")
)

// UnusedConsumerConfigError — есть переопределения для консьюмеров, которые не зарегистрированы.
// Почти всегда это опечатка или забытая конфигурация, поэтому старт прерывается.
type UnusedConsumerConfigError struct {
	Names []string
}

func (e *UnusedConsumerConfigError) Error() string {
	return fmt.Sprintf(
		"there are unused consumer configurations: %s (probably forgotten or containing typos)",
		strings.Join(e.Names, ", "),
	)
}
