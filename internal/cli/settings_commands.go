// Package cli provides settings management commands.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emberlaunch/launchersync/internal/paste"
	"github.com/emberlaunch/launchersync/internal/settings"
	"github.com/emberlaunch/launchersync/internal/validation"
)

// Editable field names accepted by 'settings set'.
const (
	fieldPasteType     = "paste-type"
	fieldPasteBase     = "paste-base"
	fieldMSAClientID   = "msa-client-id"
	fieldMetaURL       = "meta-url"
	fieldResourceURL   = "resource-url"
	fieldLibrariesURL  = "libraries-url"
	fieldFlameKey      = "flame-key"
	fieldModrinthToken = "modrinth-token"
	fieldUserAgent     = "user-agent"
)

// newSettingsCmd creates the 'settings' command group.
func newSettingsCmd() *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage the launcher's API settings",
		Long: `Settings management commands.

Commands:
  show       - Display current settings
  set        - Set a settings field
  set-secret - Set a secret field without echoing input
  path       - Show settings file path`,
	}

	settingsCmd.AddCommand(newSettingsShowCmd())
	settingsCmd.AddCommand(newSettingsSetCmd())
	settingsCmd.AddCommand(newSettingsSetSecretCmd())
	settingsCmd.AddCommand(newSettingsPathCmd())

	return settingsCmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := openStore()
			if err != nil {
				return err
			}

			f := settings.Load(fs)
			svc, _ := paste.Lookup(int(f.PasteType))

			fmt.Printf("Settings file: %s\n\n", fs.Path())
			fmt.Printf("  %-16s %s\n", fieldPasteType+":", svc.Name)
			fmt.Printf("  %-16s %s\n", fieldPasteBase+":", orPlaceholder(f.PasteCustomBase, svc.DefaultBase))
			fmt.Printf("  %-16s %s\n", fieldMSAClientID+":", orUnset(f.MSAClientID))
			fmt.Printf("  %-16s %s\n", fieldMetaURL+":", orUnset(f.MetaURL))
			fmt.Printf("  %-16s %s\n", fieldResourceURL+":", orUnset(f.ResourceURL))
			fmt.Printf("  %-16s %s\n", fieldLibrariesURL+":", orUnset(f.LibrariesURL))
			fmt.Printf("  %-16s %s\n", fieldFlameKey+":", masked(f.FlameKey))
			fmt.Printf("  %-16s %s\n", fieldModrinthToken+":", masked(f.ModrinthToken))
			fmt.Printf("  %-16s %s\n", fieldUserAgent+":", orUnset(f.UserAgent))

			return nil
		},
	}
}

func newSettingsPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show settings file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := openStore()
			if err != nil {
				return err
			}
			fmt.Println(fs.Path())
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set a settings field",
		Long: `Set a settings field and persist it.

Fields:
  paste-type      paste service (` + pasteTypeNames() + `)
  paste-base      custom paste base URL (empty for the service default)
  msa-client-id   MSA client-ID override
  meta-url        meta server URL override
  resource-url    Minecraft resource server URL override
  libraries-url   Minecraft libraries server URL override
  user-agent      custom User-Agent string

Endpoint override URLs are normalized on apply: the path gains a trailing
slash and http becomes https. An empty value clears the field.

Secret fields (flame-key, modrinth-token) are set via 'settings set-secret'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setField(args[0], args[1])
		},
	}
}

func newSettingsSetSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-secret <flame-key|modrinth-token>",
		Short: "Set a secret field without echoing input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := args[0]
			if field != fieldFlameKey && field != fieldModrinthToken {
				return fmt.Errorf("unknown secret field: %s", field)
			}

			value, err := readSecret(fmt.Sprintf("Enter %s (empty to clear): ", field))
			if err != nil {
				return err
			}

			return setField(field, value)
		},
	}
}

// setField runs the full load, edit, apply, save round trip for one field.
func setField(field, value string) error {
	log := GetLogger()

	fs, err := openStore()
	if err != nil {
		return err
	}

	f := settings.Load(fs)

	switch field {
	case fieldPasteType:
		t, err := parsePasteType(value)
		if err != nil {
			return err
		}
		f.PasteType = t
	case fieldPasteBase:
		if !validation.OverrideURL(value) {
			log.Warn().Str("value", value).Msg("value does not look like an http(s) URL")
		}
		f.PasteCustomBase = value
	case fieldMSAClientID:
		if !validation.ClientID(value) {
			log.Warn().Msg("value does not look like an MSA client ID (UUIDv4)")
		}
		f.MSAClientID = value
	case fieldMetaURL:
		if !validation.OverrideURL(value) {
			log.Warn().Str("value", value).Msg("value does not look like an http(s) URL")
		}
		f.MetaURL = value
	case fieldResourceURL:
		if !validation.OverrideURL(value) {
			log.Warn().Str("value", value).Msg("value does not look like an http(s) URL")
		}
		f.ResourceURL = value
	case fieldLibrariesURL:
		if !validation.OverrideURL(value) {
			log.Warn().Str("value", value).Msg("value does not look like an http(s) URL")
		}
		f.LibrariesURL = value
	case fieldFlameKey:
		if !validation.FlameKey(value) {
			log.Warn().Msg("value does not look like a CurseForge API key")
		}
		f.FlameKey = value
	case fieldModrinthToken:
		f.ModrinthToken = value
	case fieldUserAgent:
		f.UserAgent = value
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	settings.Apply(f, fs)
	if err := fs.Save(); err != nil {
		return err
	}

	log.Info().Str("field", field).Msg("settings updated")
	return nil
}

func parsePasteType(value string) (paste.Type, error) {
	if t, ok := paste.ByName(value); ok {
		return t, nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		if _, ok := paste.Lookup(n); ok {
			return paste.Type(n), nil
		}
	}
	return paste.DefaultType, fmt.Errorf("unknown paste service %q (known: %s)", value, pasteTypeNames())
}

func pasteTypeNames() string {
	names := ""
	for i, t := range paste.DisplayOrder {
		if i > 0 {
			names += ", "
		}
		names += t.String()
	}
	return names
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder + " (default)"
	}
	return s
}

func masked(s string) string {
	if s == "" {
		return "(unset)"
	}
	return "(set)"
}
