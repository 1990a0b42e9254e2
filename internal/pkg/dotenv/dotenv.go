// Package dotenv флаги запуска и необязательный .env файл.
package dotenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const defaultEnvFile = ".env"

// Load разбирает args (без имени программы) и подгружает env файл.
// Переменные процесса сильнее файла, --port сильнее всего.
// Возвращает false, если файла по умолчанию нет: это не ошибка.
func Load(name string, args []string) (bool, error) {
	loaded, _, err := LoadArgs(name, args)
	return loaded, err
}

// LoadArgs как Load, но дополнительно отдает позиционные аргументы.
func LoadArgs(name string, args []string) (bool, []string, error) {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)

	envFile := flags.String("env-file", defaultEnvFile, "path to the .env file")
	port := flags.StringP("port", "p", "", "server port (overrides PORT)")

	if err := flags.Parse(args); err != nil {
		return false, nil, fmt.Errorf("parse flags: %w", err)
	}

	loaded := true
	if err := godotenv.Load(*envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || flags.Changed("env-file") {
			return false, nil, fmt.Errorf("load %s: %w", *envFile, err)
		}
		loaded = false
	}

	if *port != "" {
		if err := os.Setenv("PORT", *port); err != nil {
			return loaded, nil, fmt.Errorf("set PORT: %w", err)
		}
	}

	return loaded, flags.Args(), nil
}
