package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"fmg-mcp/internal/config"
	"fmg-mcp/internal/fmg"
	"fmg-mcp/internal/logger"
	"fmg-mcp/internal/task"
	"fmg-mcp/internal/tools"
	"fmg-mcp/internal/tui"
)

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Fatal("Failed to render output: %v", err)
	}
	fmt.Println(string(out))
}

// connect builds a client from the environment and logs in.
func connect(ctx context.Context, cfg *config.Config) *fmg.Client {
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration: %v", err)
	}

	client := fmg.NewClient(cfg)
	if err := client.Connect(ctx); err != nil {
		logger.Fatal("Failed to connect to FortiManager: %v", err)
	}
	return client
}

func main() {
	cfg := config.LoadEnvironment()
	logger.Init()

	var adom string

	rootCmd := &cobra.Command{
		Use:   "fmg-mcp",
		Short: "A CLI tool for managing FortiGate devices through FortiManager",
		Long:  `fmg-mcp exposes the FortiManager JSON-RPC API as schema-described tools for devices, policies, objects, scripts and templates.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if adom != "" {
				cfg.DefaultADOM = adom
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&adom, "adom", "a", "", "ADOM to operate on (default: FMG_DEFAULT_ADOM or root)")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show FortiManager system status",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			client := connect(ctx, cfg)
			defer client.Close(ctx)

			status, err := client.GetSystemStatus(ctx)
			if err != nil {
				logger.Fatal("Failed to get system status: %v", err)
			}
			var decoded any
			if err := json.Unmarshal(status, &decoded); err != nil {
				logger.Fatal("Failed to decode system status: %v", err)
			}
			printJSON(decoded)
		},
	}

	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect and call the exposed tools",
	}

	toolsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all available tools",
		Run: func(cmd *cobra.Command, args []string) {
			registry := tools.New(nil, tools.Options{DefaultADOM: cfg.DefaultADOM})
			for _, t := range registry.List() {
				fmt.Printf("%-34s %s\n", t.Name, t.Description)
			}
		},
	}

	var toolArgs string
	toolsCallCmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Call one tool by name with JSON arguments",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var callArgs map[string]any
			if toolArgs != "" {
				if err := json.Unmarshal([]byte(toolArgs), &callArgs); err != nil {
					logger.Fatal("Invalid --args JSON: %v", err)
				}
			}

			ctx := cmd.Context()
			client := connect(ctx, cfg)
			defer client.Close(ctx)

			registry := tools.New(client, tools.Options{
				DefaultADOM:      cfg.DefaultADOM,
				TaskTimeout:      cfg.TaskTimeout,
				TaskPollInterval: cfg.TaskPollInterval,
			})
			result, err := registry.Call(ctx, args[0], callArgs)
			if err != nil {
				logger.Fatal("Tool call failed: %v", err)
			}
			printJSON(result)
		},
	}
	toolsCallCmd.Flags().StringVarP(&toolArgs, "args", "", "", "Tool arguments as a JSON object")

	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Inspect and wait for FortiManager tasks",
	}

	taskGetCmd := &cobra.Command{
		Use:   "get <task-id>",
		Short: "Show the current state of a task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			taskID, err := strconv.Atoi(args[0])
			if err != nil {
				logger.Fatal("Invalid task ID %q", args[0])
			}

			ctx := cmd.Context()
			client := connect(ctx, cfg)
			defer client.Close(ctx)

			payload, err := client.GetTask(ctx, taskID)
			if err != nil {
				logger.Fatal("Failed to get task %d: %v", taskID, err)
			}
			var decoded any
			if err := json.Unmarshal(payload, &decoded); err != nil {
				logger.Fatal("Failed to decode task %d: %v", taskID, err)
			}
			printJSON(map[string]any{
				"task":    decoded,
				"state":   string(task.TaskState(payload)),
				"percent": task.TaskPercent(payload),
			})
		},
	}

	var waitTimeout, waitInterval int
	taskWaitCmd := &cobra.Command{
		Use:   "wait <task-id>",
		Short: "Poll a task until it finishes or the timeout elapses",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			taskID, err := strconv.Atoi(args[0])
			if err != nil {
				logger.Fatal("Invalid task ID %q", args[0])
			}

			opts := task.WaitOptions{
				Timeout:      cfg.TaskTimeout,
				PollInterval: cfg.TaskPollInterval,
			}
			if waitTimeout > 0 {
				opts.Timeout = time.Duration(waitTimeout) * time.Second
			}
			if waitInterval > 0 {
				opts.PollInterval = time.Duration(waitInterval) * time.Second
			}

			ctx := cmd.Context()
			client := connect(ctx, cfg)
			defer client.Close(ctx)

			result, err := task.WaitForTask(ctx, client, taskID, opts)
			if err != nil {
				logger.Fatal("Failed waiting for task %d: %v", taskID, err)
			}

			printJSON(map[string]any{
				"completed": result.Completed,
				"success":   result.Success,
				"state":     string(result.State),
				"message":   result.Message,
			})
			if !result.Completed {
				os.Exit(1)
			}
		},
	}
	taskWaitCmd.Flags().IntVarP(&waitTimeout, "timeout", "t", 0, "Maximum seconds to wait (default: FMG_TASK_TIMEOUT or 300)")
	taskWaitCmd.Flags().IntVarP(&waitInterval, "poll-interval", "i", 0, "Seconds between polls (default: FMG_TASK_POLL_INTERVAL or 5)")

	var watchInterval int
	taskWatchCmd := &cobra.Command{
		Use:   "watch <task-id>",
		Short: "Watch a task with a live progress view",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			taskID, err := strconv.Atoi(args[0])
			if err != nil {
				logger.Fatal("Invalid task ID %q", args[0])
			}

			// The TUI owns the terminal, so keep log output in the file.
			if err := logger.InitFileOnly(); err != nil {
				logger.Fatal("Failed to set up file logging: %v", err)
			}
			defer logger.Close()

			ctx := cmd.Context()
			client := connect(ctx, cfg)
			defer client.Close(ctx)

			monitor := tui.NewTaskMonitor(client, taskID, time.Duration(watchInterval)*time.Second)
			if err := monitor.Run(ctx); err != nil {
				logger.Fatal("Task watch failed: %v", err)
			}
		},
	}
	taskWatchCmd.Flags().IntVarP(&watchInterval, "poll-interval", "i", 2, "Seconds between polls")

	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsCallCmd)
	taskCmd.AddCommand(taskGetCmd)
	taskCmd.AddCommand(taskWaitCmd)
	taskCmd.AddCommand(taskWatchCmd)

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(taskCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to execute command: %v", err)
	}
}
