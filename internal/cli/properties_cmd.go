package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/emberlaunch/launchersync/internal/events"
	"github.com/emberlaunch/launchersync/internal/meta"
	"github.com/emberlaunch/launchersync/internal/settings"
)

// newPropertiesCmd creates the 'properties' command group.
func newPropertiesCmd() *cobra.Command {
	propertiesCmd := &cobra.Command{
		Use:   "properties",
		Short: "Work with the meta server's remote properties",
	}

	propertiesCmd.AddCommand(newPropertiesRefreshCmd())
	propertiesCmd.AddCommand(newPropertiesURLCmd())

	return propertiesCmd
}

func newPropertiesURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "Show the properties document URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := openStore()
			if err != nil {
				return err
			}
			f := settings.Load(fs)
			client := meta.NewPropertyClient(f.MetaURL, f.UserAgent, nil)
			fmt.Println(client.URL())
			return nil
		},
	}
}

func newPropertiesRefreshCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Download and apply the meta server's properties",
		Long: `Download the remote properties document and apply it to the settings.

The meta server is taken from the meta-url override when set, otherwise the
stock server is used. Applied endpoint URLs are normalized the same way
'settings set' normalizes them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := GetLogger()

			fs, err := openStore()
			if err != nil {
				return err
			}

			f := settings.Load(fs)
			client := meta.NewPropertyClient(f.MetaURL, f.UserAgent, log)

			bus := events.NewBus(0)
			defer bus.Close()
			outcome := bus.SubscribeAll()

			ctrl := meta.NewController(fs, client, bus)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			log.Info().Str("url", client.URL()).Msg("downloading properties")
			if !ctrl.Refresh(ctx) {
				return fmt.Errorf("a properties refresh is already in flight")
			}

			for ev := range outcome {
				switch ev := ev.(type) {
				case *events.PropertiesSucceededEvent:
					if len(ev.Applied) == 0 {
						fmt.Println("No applicable properties in the document.")
						return nil
					}
					fmt.Println("Applied properties:")
					names := make([]string, 0, len(ev.Applied))
					for name := range ev.Applied {
						names = append(names, name)
					}
					sort.Strings(names)
					for _, name := range names {
						fmt.Printf("  %s: %s\n", name, ev.Applied[name])
					}
					return fs.Save()
				case *events.PropertiesFailedEvent:
					return fmt.Errorf("failed to apply properties from %s: %s", ev.URL, ev.Reason)
				}
			}

			return fmt.Errorf("no outcome received")
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "download timeout")

	return cmd
}
