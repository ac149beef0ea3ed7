package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Gunvolt24/consumer_handler/config"
	"github.com/Gunvolt24/consumer_handler/internal/registry"
)

// CLI-проверка конфигурации обработчиков без подключения к брокеру и базе:
// переопределения из окружения сверяются со списком консьюмеров.
func main() {
	consumersFlag := flag.String("consumers", "", "comma-separated consumer names; empty - take from CONSUMER_CONSUMERS")
	prefix := flag.String("prefix", config.DefaultPrefix, "environment variable prefix")
	envFile := flag.String("env", ".env.local", "optional env file to load first")
	flag.Parse()

	_ = godotenv.Load(*envFile)

	cfg, err := config.LoadWithPrefix(*prefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	consumers := splitNames(*consumersFlag)
	if len(consumers) == 0 {
		for name := range cfg.Consumers {
			consumers = append(consumers, name)
		}
		sort.Strings(consumers)
	}

	if err := registry.CheckOverrides(consumers, cfg.RegistryOverrides()); err != nil {
		var unused *registry.UnusedConsumerConfigError
		if errors.As(err, &unused) {
			fmt.Fprintf(os.Stderr, "overrides without consumer: %s\n", strings.Join(unused.Names, ", "))
		} else {
			fmt.Fprintf(os.Stderr, "check: %v\n", err)
		}
		os.Exit(1)
	}

	defaults := cfg.Handler.Defaults()
	overrides := cfg.RegistryOverrides()
	for _, name := range consumers {
		key := registry.NormalizeName(name)
		var o *registry.Override
		if v, ok := overrides[key]; ok {
			o = &v
		}
		s := defaults.Merge(o)
		fmt.Printf("%s stop_sleep_seconds=%d clear_session=%t logger=%s session=%s\n",
			key, s.StopSleepSeconds, s.ClearSession, s.LoggerID, s.SessionID)
	}
}

func splitNames(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
