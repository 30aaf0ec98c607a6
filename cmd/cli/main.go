package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/riddhimanrana/lets-assist-core/internal/config"
	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
	"github.com/riddhimanrana/lets-assist-core/pkg/core/scheduling"
	"github.com/riddhimanrana/lets-assist-core/pkg/core/services"
	"github.com/riddhimanrana/lets-assist-core/pkg/postgres"
	"github.com/riddhimanrana/lets-assist-core/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Lets Assist CLI - Manage volunteer projects and signups",
		Long:  `A CLI tool for managing volunteer projects, slot capacity, and signup admission.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.logger != nil {
					app.logger.Sync()
				}
				if app.database != nil {
					app.database.Close()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createProjectCmd())
	rootCmd.AddCommand(listProjectsCmd())
	rootCmd.AddCommand(projectOverviewCmd())
	rootCmd.AddCommand(signupCmd())
	rootCmd.AddCommand(approveSignupCmd())
	rootCmd.AddCommand(rejectSignupCmd())
	rootCmd.AddCommand(checkinCmd())
	rootCmd.AddCommand(cancelSignupCmd())
	rootCmd.AddCommand(cancelProjectCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and the database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.logger.Info("Loading configuration")
	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.logger.Info("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.logger.Info("Database connected successfully")

	return nil
}

// capacityPolicy maps the configured signup policy onto the core's counting
// policy
func capacityPolicy() scheduling.CapacityPolicy {
	return scheduling.CapacityPolicy{CountAttended: app.cfg.Signup.CountAttended}
}

// printAdmissionError translates the core's typed errors into user-facing
// messages; anything else is unexpected and propagates
func printAdmissionError(err error) bool {
	var (
		unknown   *scheduling.UnknownSlotError
		cancelled *scheduling.ProjectCancelledError
		full      *scheduling.CapacityExceededError
	)
	switch {
	case errors.As(err, &unknown):
		fmt.Println("This time slot is no longer available.")
	case errors.As(err, &cancelled):
		fmt.Println("This project has been cancelled.")
	case errors.As(err, &full):
		fmt.Println("This slot is full. Try another slot on the same project.")
	default:
		return false
	}
	return true
}

// Command definitions

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.database.RunMigrations(app.ctx); err != nil {
				return err
			}
			fmt.Println("Migrations applied.")
			return nil
		},
	}
}

// projectFile is the YAML shape accepted by createProject
type projectFile struct {
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Visibility  model.Visibility `yaml:"visibility"`
	Schedule    model.Schedule   `yaml:"schedule"`
	// Template names a configured recurrence template to generate a
	// multi-day schedule instead of spelling one out
	Template string `yaml:"template"`
}

func createProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "createProject <definition.yaml>",
		Short: "Create a project from a YAML definition file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read project definition: %w", err)
			}

			var def projectFile
			if err := yaml.Unmarshal(data, &def); err != nil {
				return fmt.Errorf("failed to parse project definition: %w", err)
			}

			if def.Visibility == "" {
				def.Visibility = model.VisibilityPublic
			}

			schedule := def.Schedule
			if def.Template != "" {
				schedule, err = scheduleFromTemplate(def.Template)
				if err != nil {
					return err
				}
			}

			project, err := services.CreateProject(app.ctx, app.database, app.logger, services.CreateProjectInput{
				Title:       def.Title,
				Description: def.Description,
				Visibility:  def.Visibility,
				Schedule:    schedule,
			})
			if err != nil {
				return err
			}

			slots, _ := scheduling.EnumerateSlots(project.Schedule)
			fmt.Printf("\nProject created successfully!\n\n")
			fmt.Printf("Project ID: %s\n", project.ID)
			fmt.Printf("Title:      %s\n", project.Title)
			fmt.Printf("Type:       %s\n", project.Schedule.EventType)
			fmt.Printf("Slots:      %d\n\n", len(slots))
			for _, slot := range slots {
				fmt.Printf("  %-20s %s %s-%s (capacity %d)\n",
					slot.ScheduleID, slot.Date, slot.StartTime, slot.EndTime, slot.Capacity)
			}
			fmt.Println()

			return nil
		},
	}
}

func scheduleFromTemplate(name string) (model.Schedule, error) {
	for _, tmpl := range app.cfg.RecurrenceTemplates {
		if tmpl.Name == name {
			return services.BuildMultiDaySchedule(tmpl.RRule, tmpl.StartTime, tmpl.EndTime, tmpl.Volunteers, time.Now().UTC())
		}
	}
	return model.Schedule{}, fmt.Errorf("no recurrence template named %q in config", name)
}

func listProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listProjects",
		Short: "List active projects with per-slot capacity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			visibilityFlag, _ := cmd.Flags().GetString("visibility")

			var visibilities []model.Visibility
			if visibilityFlag != "" {
				v := model.Visibility(visibilityFlag)
				if !v.IsValid() {
					return fmt.Errorf("unknown visibility %q", visibilityFlag)
				}
				visibilities = append(visibilities, v)
			}

			active, err := services.ListActiveProjects(app.ctx, app.database, app.logger,
				time.Now().UTC(), visibilities, capacityPolicy())
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d active projects:\n\n", len(active))
			for _, overview := range active {
				fmt.Printf("- %s (%s) [%s]\n", overview.Project.Title, overview.Project.ID, overview.Status)
				for _, slot := range overview.Slots {
					c := overview.Capacity[slot.ScheduleID]
					fmt.Printf("    %-20s %s %s-%s  %d/%d filled, %d remaining\n",
						slot.ScheduleID, slot.Date, slot.StartTime, slot.EndTime,
						c.Confirmed, c.Capacity, c.Remaining)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("visibility", "", "Filter by visibility (public, unlisted, organization_only)")

	return cmd
}

func projectOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projectOverview <project_id>",
		Short: "Show a project's status and slot capacity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overview, err := services.GetProjectOverview(app.ctx, app.database, app.logger,
				args[0], time.Now().UTC(), capacityPolicy())
			if err != nil {
				return err
			}

			fmt.Printf("\n%s (%s)\n", overview.Project.Title, overview.Project.ID)
			fmt.Printf("Status:     %s\n", overview.Status)
			fmt.Printf("Visibility: %s\n\n", overview.Project.Visibility)
			for _, slot := range overview.Slots {
				c := overview.Capacity[slot.ScheduleID]
				fmt.Printf("  %-20s %s %s-%s  %d/%d filled, %d remaining\n",
					slot.ScheduleID, slot.Date, slot.StartTime, slot.EndTime,
					c.Confirmed, c.Capacity, c.Remaining)
			}
			fmt.Println()

			return nil
		},
	}
}

func signupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup <project_id> <schedule_id> <user_id>",
		Short: "Sign a volunteer up for a slot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			anonymous, _ := cmd.Flags().GetBool("anonymous")

			req := services.SignupRequest{
				ProjectID:  args[0],
				ScheduleID: args[1],
			}
			if anonymous {
				req.AnonymousID = args[2]
			} else {
				req.UserID = args[2]
			}

			result, err := services.RequestSignup(app.ctx, app.database, app.logger,
				req, time.Now().UTC(), app.cfg.Signup.AutoApprove, capacityPolicy())
			if err != nil {
				if printAdmissionError(err) {
					return nil
				}
				return err
			}

			fmt.Printf("\nSignup created!\n\n")
			fmt.Printf("Signup ID: %s\n", result.Signup.ID)
			fmt.Printf("Status:    %s\n", result.Signup.Status)
			fmt.Printf("Remaining: %d\n\n", result.RemainingAfter)

			return nil
		},
	}

	cmd.Flags().Bool("anonymous", false, "Treat the identity as an anonymous signup id")

	return cmd
}

func approveSignupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approveSignup <project_id> <signup_id>",
		Short: "Approve a pending signup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.ApproveSignup(app.ctx, app.database, app.logger, args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Signup approved.")
			return nil
		},
	}
}

func rejectSignupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rejectSignup <project_id> <signup_id>",
		Short: "Reject a pending signup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.RejectSignup(app.ctx, app.database, app.logger, args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Signup rejected.")
			return nil
		},
	}
}

func checkinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkin <project_id> <signup_id>",
		Short: "Mark an approved signup as attended",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.CheckInSignup(app.ctx, app.database, app.logger, args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Volunteer checked in.")
			return nil
		},
	}
}

func cancelSignupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancelSignup <project_id> <signup_id>",
		Short: "Cancel a signup, releasing its spot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.CancelSignup(app.ctx, app.database, app.logger, args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Signup cancelled.")
			return nil
		},
	}
}

func cancelProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancelProject <project_id>",
		Short: "Cancel a project, refusing further signups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.CancelProject(app.ctx, app.database, app.logger, args[0], time.Now().UTC()); err != nil {
				return err
			}
			fmt.Println("Project cancelled.")
			return nil
		},
	}
}
