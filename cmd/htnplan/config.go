package htnplan

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bindConfig wires cmd's flags to a Viper instance that also reads
// ./htnplan.yaml (if present) and HTNPLAN_*-prefixed environment
// variables, per SPEC_FULL.md B3.
func bindConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName("htnplan")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("HTNPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}
	return v, nil
}
