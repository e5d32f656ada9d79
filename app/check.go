package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/orgdesk/orgdesk/internal/access"
	"github.com/orgdesk/orgdesk/internal/daemon"
	"github.com/orgdesk/orgdesk/internal/db/controller/actor"
	"github.com/orgdesk/orgdesk/internal/quota"
)

var (
	// errNoQuery is returned when check is called without anything to check.
	errNoQuery = errors.New("one of --permission, --all, --any or --resource is required")
	// errNoActor is returned when neither an actor file nor a user id was given.
	errNoActor = errors.New("one of --actor or --user is required")
)

func init() { //nolint: gochecknoinits
	checkCmd.Flags().StringVar(&checkActorFile, "actor", "", "JSON file holding the actor snapshot, checked offline")
	checkCmd.Flags().Uint64Var(&checkUserID, "user", 0, "Id of the user to load from the database")
	checkCmd.Flags().StringVar(&checkPermission, "permission", "", "Single permission, e.g. members.create")
	checkCmd.Flags().StringSliceVar(&checkAll, "all", nil, "Permissions that must all be granted")
	checkCmd.Flags().StringSliceVar(&checkAny, "any", nil, "Permissions of which one must be granted")
	checkCmd.Flags().StringVar(&checkResource, "resource", "", "Resource kind to evaluate the usage limit for")

	checkCmd.MarkFlagsMutuallyExclusive("actor", "user")

	rootCmd.AddCommand(checkCmd)
}

var (
	checkActorFile  string
	checkUserID     uint64
	checkPermission string
	checkAll        []string
	checkAny        []string
	checkResource   string

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Show what a user may do and how much of the plan is left",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if checkActorFile != "" {
				return nil
			}

			return loadConfig(cmd, args)
		},
		RunE: runCheck,
	}
)

type checkResult struct {
	User       uint64           `json:"user,omitempty"`
	SuperAdmin bool             `json:"superAdmin"`
	Decision   *access.Decision `json:"decision,omitempty"`
	Limit      *quota.Limit     `json:"limit,omitempty"`
}

func runCheck(cmd *cobra.Command, _ []string) error {
	var req access.Request

	switch {
	case checkPermission != "":
		req = access.Single(checkPermission)
	case len(checkAll) > 0:
		req = access.AllOf(checkAll...)
	case len(checkAny) > 0:
		req = access.AnyOf(checkAny...)
	case checkResource == "":
		return errNoQuery
	}

	a, err := checkActor()
	if err != nil {
		return err
	}

	result := checkResult{User: a.UserID, SuperAdmin: a.IsSuperAdmin()}

	if !req.IsZero() {
		decision := access.Resolve(a, req)
		result.Decision = &decision
	}

	if checkResource != "" {
		limit := quota.Evaluate(a, quota.ResourceKind(checkResource))
		result.Limit = &limit
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(result) //nolint:wrapcheck
}

// checkActor reads the actor from --actor or loads it from the database by --user.
func checkActor() (*access.Actor, error) {
	if checkActorFile != "" {
		data, err := os.ReadFile(checkActorFile)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		var a access.Actor
		if err = json.Unmarshal(data, &a); err != nil {
			return nil, err //nolint:wrapcheck
		}

		return &a, nil
	}

	if checkUserID == 0 {
		return nil, errNoActor
	}

	db, err := daemon.OpenDB(&cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return actor.Load(context.Background(), db, checkUserID) //nolint:wrapcheck
}
