// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrot

import (
	"errors"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

var (
	// ErrNilViper is returned to the fx.App when the externally supplied Viper
	// instance is nil
	ErrNilViper = errors.New("the viper instance cannot be nil")
)

// Unmarshaler is the strategy used to read configuration into structs.
// Components in this module never touch viper directly; they depend on this.
type Unmarshaler interface {
	// Unmarshal reads the entire configuration into value
	Unmarshal(value any) error

	// UnmarshalKey reads a configuration subtree into value
	UnmarshalKey(key string, value any) error
}

// DecodeHook is the viper decoder option applied by ForViper.  Besides the
// duration and comma-separated slice conversions viper does by default, it
// decodes strings into any encoding.TextUnmarshaler, e.g. zapcore.Level.
func DecodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	)
}

// ViperUnmarshaler is the Unmarshaler backed by a Viper instance.
type ViperUnmarshaler struct {
	// Viper is the required Viper instance to which all unmarshal operations are delegated
	Viper *viper.Viper

	// Options is the optional slice of viper.DecoderConfigOptions passed to all
	// unmarshal calls
	Options []viper.DecoderConfigOption
}

// Unmarshal implements Unmarshaler
func (vu ViperUnmarshaler) Unmarshal(value any) error {
	return vu.Viper.Unmarshal(value, vu.Options...)
}

// UnmarshalKey implements Unmarshaler.  A key that is not set leaves value untouched.
func (vu ViperUnmarshaler) UnmarshalKey(key string, value any) error {
	return vu.Viper.UnmarshalKey(key, value, vu.Options...)
}

// ViperUnmarshalerIn is the set of dependencies for the Unmarshaler that ForViper provides.
type ViperUnmarshalerIn struct {
	fx.In

	// Options is the optional slice of viper.DecoderConfigOption that will be
	// applied after the ones passed to ForViper
	Options []viper.DecoderConfigOption `optional:"true"`
}

// ForViper supplies v to the enclosing fx.App and provides an Unmarshaler
// backed by it.  DecodeHook is always the first decoder option.
func ForViper(v *viper.Viper, o ...viper.DecoderConfigOption) fx.Option {
	if v == nil {
		return fx.Error(ErrNilViper)
	}

	return fx.Options(
		fx.Supply(v),
		fx.Provide(
			func(in ViperUnmarshalerIn) Unmarshaler {
				options := make([]viper.DecoderConfigOption, 0, 1+len(o)+len(in.Options))
				options = append(options, DecodeHook())
				options = append(options, o...)
				options = append(options, in.Options...)

				return ViperUnmarshaler{
					Viper:   v,
					Options: options,
				}
			},
		),
	)
}
