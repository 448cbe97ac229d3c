package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/libshub/libs-client/pkg/libs"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// NewResourcesCommand creates the resources catalog command.
func NewResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "resources",
		Aliases: []string{"res"},
		Short:   "List available resource types",
		Long:    "Display every resource type the API serves, its path and supported operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			type resourceInfo struct {
				Name        string `json:"name"         yaml:"name"`
				Path        string `json:"path"         yaml:"path"`
				TermManaged bool   `json:"term_managed" yaml:"term_managed"`
			}

			infos := make([]resourceInfo, 0)

			for _, name := range libs.CanonicalNames() {
				desc, err := libs.Describe(name)
				if err != nil {
					return fmt.Errorf("describing resource: %w", err)
				}

				infos = append(infos, resourceInfo{
					Name:        desc.CanonicalName,
					Path:        desc.Path,
					TermManaged: desc.TermManaged,
				})
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")

				return encoder.Encode(infos)
			case OutputFormatYAML:
				encoder := yaml.NewEncoder(os.Stdout)

				return encoder.Encode(infos)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Path", "Term Managed")

				for _, info := range infos {
					termManaged := "no"
					if info.TermManaged {
						termManaged = "yes"
					}

					_ = table.Append(info.Name, info.Path, termManaged)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var (
		page   int
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "list RESOURCE",
		Short: "List resources of a type",
		Long:  "Fetch a page of the named resource collection, with optional search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := libs.NewListParams().WithPage(page).WithLimit(limit)
			if search != "" {
				params = params.WithSearch(search)
			}

			result, err := client.List(context.Background(), args[0], params)
			if err != nil {
				return fmt.Errorf("listing %s: %w", args[0], err)
			}

			return renderOutput(result)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "results per page")
	cmd.Flags().StringVar(&search, "search", "", "search filter")

	return cmd
}

// NewGetCommand creates the get command.
func NewGetCommand() *cobra.Command {
	var (
		short   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "get RESOURCE ID",
		Short: "Get a resource by ID",
		Long:  "Fetch one resource by its identifier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			opts := &libs.GetOptions{
				Short:     short,
				SkipCache: noCache,
			}

			result, err := client.Get(context.Background(), args[0], args[1], opts)
			if err != nil {
				return fmt.Errorf("getting %s %s: %w", args[0], args[1], err)
			}

			return renderOutput(result)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "return only identity and name fields")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the read cache")

	return cmd
}

// NewCreateCommand creates the create command.
func NewCreateCommand() *cobra.Command {
	var (
		data string
		file string
	)

	cmd := &cobra.Command{
		Use:   "create RESOURCE",
		Short: "Create a resource",
		Long:  "Create a resource from a JSON payload given inline or from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(data, file)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Create(context.Background(), args[0], payload)
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}

			return renderOutput(result)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "inline JSON payload")
	cmd.Flags().StringVarP(&file, "file", "f", "", "payload file path, or - for stdin")

	return cmd
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand() *cobra.Command {
	var (
		data string
		file string
	)

	cmd := &cobra.Command{
		Use:   "update RESOURCE ID",
		Short: "Update a resource",
		Long: `Apply a partial update to a resource.

For term-managed resources the payload is merged with the current server
representation first, so terms absent from the payload are preserved.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(data, file)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Update(context.Background(), args[0], args[1], payload)
			if err != nil {
				return fmt.Errorf("updating %s %s: %w", args[0], args[1], err)
			}

			return renderOutput(result)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "inline JSON payload")
	cmd.Flags().StringVarP(&file, "file", "f", "", "payload file path, or - for stdin")

	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete RESOURCE ID",
		Short: "Delete a resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Really delete %s %s? (y/N): ", args[0], args[1])

				var response string

				_, _ = fmt.Scanln(&response)

				if !strings.EqualFold(strings.TrimSpace(response), "y") {
					fmt.Println("Cancelled")

					return nil
				}
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.Delete(context.Background(), args[0], args[1]); err != nil {
				return fmt.Errorf("deleting %s %s: %w", args[0], args[1], err)
			}

			fmt.Printf("Deleted %s %s\n", args[0], args[1])

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation prompt")

	return cmd
}

// NewFindTermsCommand creates the find-terms command.
func NewFindTermsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find-terms RESOURCE VALUE",
		Short: "Find terms by value",
		Long:  "Search a term-managed resource's existing terms by their value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.FindTerms(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("finding terms for %s: %w", args[0], err)
			}

			return renderOutput(result)
		},
	}
}

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	var callerID string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show client cache and rate limit statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			cacheStats := client.CacheStats()
			limitStats := client.RateLimitStats(callerID)

			type statsInfo struct {
				CacheSize     int     `json:"cache_size"      yaml:"cache_size"`
				CacheCapacity int     `json:"cache_capacity"  yaml:"cache_capacity"`
				CacheTTL      string  `json:"cache_ttl"       yaml:"cache_ttl"`
				CallerID      string  `json:"caller_id"       yaml:"caller_id"`
				Requests      int     `json:"requests"        yaml:"requests"`
				Blocked       int64   `json:"blocked"         yaml:"blocked"`
				TotalCallers  int     `json:"total_callers"   yaml:"total_callers"`
			}

			info := statsInfo{
				CacheSize:     cacheStats.Size,
				CacheCapacity: cacheStats.Capacity,
				CacheTTL:      cacheStats.TTL.String(),
				CallerID:      limitStats.CallerID,
				Requests:      limitStats.Requests,
				Blocked:       limitStats.Blocked,
				TotalCallers:  limitStats.TotalCallers,
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")

				return encoder.Encode(info)
			case OutputFormatYAML:
				encoder := yaml.NewEncoder(os.Stdout)

				return encoder.Encode(info)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Metric", "Value")
				_ = table.Append("Cache Size", fmt.Sprintf("%d", info.CacheSize))
				_ = table.Append("Cache Capacity", fmt.Sprintf("%d", info.CacheCapacity))
				_ = table.Append("Cache TTL", info.CacheTTL)
				_ = table.Append("Caller", info.CallerID)
				_ = table.Append("Requests In Window", fmt.Sprintf("%d", info.Requests))
				_ = table.Append("Blocked", fmt.Sprintf("%d", info.Blocked))
				_ = table.Append("Total Callers", fmt.Sprintf("%d", info.TotalCallers))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&callerID, "caller", "", "caller to report, aggregate when empty")

	return cmd
}
