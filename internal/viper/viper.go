// Package viper provides convenience functions over the official spf13/viper library.
// In particular, it satisfies the need of providing pre-configured viper instances.
package viper

import (
	"errors"

	"github.com/spf13/viper"
)

// KeyDelimiter separates nested keys. Dots are valid within option names (e.g. target names), hence the custom
// delimiter.
const KeyDelimiter = "::"

// New returns a new viper instance that uses KeyDelimiter.
func New() *viper.Viper {
	return viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
}

// ReadOptional reads the config of v. A missing config file is not an error; the returned bool reports whether
// a file was read.
func ReadOptional(v *viper.Viper) (bool, error) {
	err := v.ReadInConfig()
	if err == nil {
		return true, nil
	}

	var nf viper.ConfigFileNotFoundError
	if errors.As(err, &nf) {
		return false, nil
	}
	return false, err
}
