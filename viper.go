// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrot

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to configuration keys when looking them up in
	// the environment, e.g. servers.main.address is PARROT_SERVERS_MAIN_ADDRESS.
	EnvPrefix = "PARROT"

	// DefaultEnvFile is the dotenv file loaded when NewViper is given none.
	DefaultEnvFile = ".env"
)

// ConfigPaths are the directories searched for a program's config file.
var ConfigPaths = []string{".", "/etc/parrot"}

// LoadEnv loads each dotenv file into the process environment.  Variables
// already present in the environment win.  Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("unable to load environment file %s: %w", f, err)
		}
	}

	return nil
}

// NewViper bootstraps the configuration for the program called name.  The
// dotenv files are loaded first, then an optional config file named after the
// program is read from ConfigPaths.  Environment variables override both.
func NewViper(name string, envFiles ...string) (*viper.Viper, error) {
	if err := LoadEnv(envFiles...); err != nil {
		return nil, ConfigurationError(err)
	}

	v := viper.New()
	v.SetConfigName(name)
	for _, p := range ConfigPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return nil, ConfigurationError(
			fmt.Errorf("unable to read configuration for %s: %w", name, err),
		)
	}

	return v, nil
}
