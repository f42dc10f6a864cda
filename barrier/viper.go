package barrier

import "github.com/spf13/viper"

const (
	// BarrierKey is the Viper subkey under which barrier configuration is stored.
	BarrierKey = "faults"
)

// Options is the externally configurable portion of a fault barrier.
type Options struct {
	// Threshold is the consecutive-fault count that trips the breaker
	// for an integration.  Nonpositive values mean DefaultThreshold.
	Threshold int `json:"threshold"`
}

// Sub returns the standard child Viper, using BarrierKey, for this package.
// If passed nil, this function returns nil.
func Sub(v *viper.Viper) *viper.Viper {
	if v != nil {
		return v.Sub(BarrierKey)
	}

	return nil
}

// FromViper produces an Options from a (possibly nil) Viper instance.
func FromViper(v *viper.Viper) (*Options, error) {
	o := new(Options)
	if v != nil {
		if err := v.Unmarshal(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// WithOptions applies externally loaded configuration to a barrier.
// A nil Options applies defaults.
func WithOptions(o *Options) Option {
	return func(b *barrier) {
		if o != nil {
			WithThreshold(o.Threshold)(b)
		}
	}
}
