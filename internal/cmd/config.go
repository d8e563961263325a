package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/commitgen/commitgen/internal/pkg/config"
)

// NewConfigCmd creates the config command for viewing and changing settings.
func NewConfigCmd() *cobra.Command {
	var (
		apiKey string
		model  string
	)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or change commitgen settings",
		Long: `Without flags, prints the current settings with the API key masked.
With --api-key or --model, stores the given value in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgMgr, err := loadConfigManager(cmd)
			if err != nil {
				return err
			}

			changed := false
			if apiKey != "" {
				if err := cfgMgr.Set("api_key", apiKey); err != nil {
					return err
				}
				fmt.Println("API key saved.")
				changed = true
			}
			if model != "" {
				if err := cfgMgr.Set("model", model); err != nil {
					return err
				}
				fmt.Printf("Model set to %s.\n", model)
				changed = true
			}
			if changed {
				return nil
			}

			return printSettings(cfgMgr)
		},
	}

	configCmd.Flags().StringVar(&apiKey, "api-key", "", "API key for the completion service")
	configCmd.Flags().StringVar(&model, "model", "", "default model name")

	return configCmd
}

// printSettings prints all settings, masking the API key.
func printSettings(cfgMgr *config.ViperManager) error {
	settings := flattenSettings("", cfgMgr.List())

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("Config file: %s\n\n", cfgMgr.GetConfigPath())
	for _, k := range keys {
		v := settings[k]
		if k == "api_key" {
			s, _ := v.(string)
			if s == "" {
				v = "(not set)"
			} else {
				v = config.MaskAPIKey(s)
			}
		}
		fmt.Printf("%s = %v\n", k, v)
	}

	return nil
}

// flattenSettings converts nested setting maps to dot-notation keys.
func flattenSettings(prefix string, settings map[string]interface{}) map[string]interface{} {
	flat := make(map[string]interface{})
	for k, v := range settings {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			for nk, nv := range flattenSettings(key, nested) {
				flat[nk] = nv
			}
			continue
		}
		flat[key] = v
	}
	return flat
}
