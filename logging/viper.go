package logging

import (
	"github.com/spf13/viper"
)

const (
	// LoggingKey is the Viper subkey holding this package's Options,
	// alongside keys like target.TargetsKey and barrier.BarrierKey in
	// an embedding process's configuration.
	LoggingKey = "log"
)

// Sub descends into the LoggingKey child of the given Viper instance.
// A nil Viper yields nil, which FromViper accepts.
func Sub(v *viper.Viper) *viper.Viper {
	if v != nil {
		return v.Sub(LoggingKey)
	}

	return nil
}

// FromViper unmarshals an Options from a (possibly nil) Viper instance.
// Use FromViper(Sub(v)) when the configuration lives under the standard
// subkey.
func FromViper(v *viper.Viper) (*Options, error) {
	o := new(Options)
	if v != nil {
		if err := v.Unmarshal(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}
