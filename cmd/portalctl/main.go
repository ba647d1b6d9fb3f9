package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cyber_portal/internal/config"
	"cyber_portal/internal/model"
	"cyber_portal/internal/repository"
	"cyber_portal/internal/service"
	"cyber_portal/internal/store"
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// opener connects the store a command runs against.
type opener func(ctx context.Context) (store.Store, func(), error)

type policeFlags struct {
	username string
	password string
}

func main() {
	_ = godotenv.Load()

	root := newRootCmd(os.Stdout, openConfiguredStore)
	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openConfiguredStore(ctx context.Context) (store.Store, func(), error) {
	cfg, err := config.Load(false)
	if err != nil {
		return nil, nil, codeError(3, "loading config: %s", err)
	}
	st, closeFn, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, codeError(3, "opening %s store: %s", cfg.StoreBackend, err)
	}
	return st, closeFn, nil
}

func newRootCmd(out io.Writer, open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Administer the cybercrime complaint portal store",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(out)

	root.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Seed default users and empty complaint and feedback collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), open, func(ctx context.Context, st store.Store) error {
				if err := repository.InitDefaults(ctx, st); err != nil {
					return codeError(1, "seeding defaults: %s", err)
				}
				fmt.Fprintln(out, "defaults seeded")
				return nil
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "lookup <complaint-id>",
		Short: "Show a complaint by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), open, func(ctx context.Context, st store.Store) error {
				complaints := newComplaintService(st)
				complaint, err := complaints.LookupComplaint(ctx, args[0])
				if err != nil {
					return domainError(err)
				}
				return writeJSON(out, complaint)
			})
		},
	})

	var listFlags policeFlags
	listCmd := &cobra.Command{
		Use:   "complaints",
		Short: "List all complaints, newest first (police)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), open, func(ctx context.Context, st store.Store) error {
				officer, err := authenticatePolice(ctx, st, listFlags)
				if err != nil {
					return err
				}
				complaints, err := newComplaintService(st).ListComplaints(ctx, officer)
				if err != nil {
					return domainError(err)
				}
				return writeJSON(out, complaints)
			})
		},
	}
	addPoliceFlags(listCmd, &listFlags)
	root.AddCommand(listCmd)

	var statusFlags policeFlags
	statusCmd := &cobra.Command{
		Use:   "set-status <complaint-id> <status>",
		Short: "Change a complaint's status (police)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), open, func(ctx context.Context, st store.Store) error {
				officer, err := authenticatePolice(ctx, st, statusFlags)
				if err != nil {
					return err
				}
				complaint, err := newComplaintService(st).SetStatus(ctx, officer, args[0], args[1])
				if err != nil {
					return domainError(err)
				}
				return writeJSON(out, complaint)
			})
		},
	}
	addPoliceFlags(statusCmd, &statusFlags)
	root.AddCommand(statusCmd)

	root.AddCommand(&cobra.Command{
		Use:   "feedback",
		Short: "List feedback, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), open, func(ctx context.Context, st store.Store) error {
				feedbacks, err := service.NewFeedbackService(repository.NewFeedbackRepository(st)).List(ctx)
				if err != nil {
					return domainError(err)
				}
				return writeJSON(out, feedbacks)
			})
		},
	})

	return root
}

func addPoliceFlags(cmd *cobra.Command, flags *policeFlags) {
	f := cmd.Flags()
	f.StringVar(&flags.username, "username", "", "Police username")
	f.StringVar(&flags.password, "password", "", "Police password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
}

func withStore(ctx context.Context, open opener, fn func(context.Context, store.Store) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, closeFn, err := open(ctx)
	if err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			return err
		}
		return codeError(3, "opening store: %s", err)
	}
	defer closeFn()
	return fn(ctx, st)
}

func newComplaintService(st store.Store) service.ComplaintService {
	return service.NewComplaintService(
		repository.NewComplaintRepository(st),
		repository.NewFeedbackRepository(st),
		service.NewIDGenerator(),
	)
}

func authenticatePolice(ctx context.Context, st store.Store, flags policeFlags) (*model.User, error) {
	auth := service.NewAuthService(repository.NewUserRepository(st), 0)
	officer, err := auth.Authenticate(ctx, flags.username, flags.password, model.RolePolice)
	if err != nil {
		return nil, domainError(err)
	}
	return officer, nil
}

func domainError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return codeError(1, "complaint ID not found")
	case errors.Is(err, service.ErrAuthenticationFailed):
		return codeError(1, "invalid credentials")
	default:
		return codeError(1, "%s", err)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
