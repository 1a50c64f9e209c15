package main

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/jrsteele09/recyclemate/guard"
	"github.com/jrsteele09/recyclemate/pickups"
	"github.com/jrsteele09/recyclemate/users"
	"github.com/spf13/cobra"
)

func (a *app) printPickups(list []pickups.Pickup) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No pickups")
		return
	}
	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("ID", "TYPE", "DATE", "SLOT", "STATUS", "ADDRESS", "WEIGHT")
	for _, p := range list {
		weight := ""
		if p.WeightKg > 0 {
			weight = fmt.Sprintf("%.1f kg", p.WeightKg)
		}
		table.AddRow(p.ID, p.Type, p.Date, p.TimeSlot, p.Status, p.Address, weight)
	}
	fmt.Fprintln(a.out, table)
}

func (a *app) printProfiles(list []users.Profile) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No accounts")
		return
	}
	table := uitable.New()
	table.AddRow("ID", "NAME", "EMAIL", "STATUS", "JOINED")
	for _, p := range list {
		table.AddRow(p.ID, p.Name, p.Email, p.Status, p.DateJoined.Format(pickups.DateLayout))
	}
	fmt.Fprintln(a.out, table)
}

func (a *app) printPickup(p pickups.Pickup) {
	table := uitable.New()
	table.AddRow("ID:", p.ID)
	table.AddRow("STATUS:", p.Status)
	table.AddRow("TYPE:", p.Type)
	table.AddRow("MATERIALS:", strings.Join(p.Materials, ", "))
	table.AddRow("ADDRESS:", p.Address)
	table.AddRow("DATE:", strings.TrimSpace(p.Date+" "+p.TimeSlot))
	if p.Notes != "" {
		table.AddRow("NOTES:", p.Notes)
	}
	if p.WeightKg > 0 {
		table.AddRow("WEIGHT:", fmt.Sprintf("%.1f kg", p.WeightKg))
	}
	fmt.Fprintln(a.out, table)
}

func newPickupsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pickups",
		Short: "Household pickups",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.enter(guard.RouteUserDashboard, users.RoleUser)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your pickups with a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := a.pickups.List(cmd.Context())
			if err != nil {
				return err
			}
			a.printPickups(all)
			s := pickups.Summarize(all)
			fmt.Fprintf(a.out, "\n%d pickups, %d active, %.1f kg recycled, %d points\n", s.Total, s.Active(), s.TotalWeightKg, s.Points)
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one pickup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pickups.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printPickup(p)
			return nil
		},
	}

	var req pickups.Request
	var wasteType string
	schedule := &cobra.Command{
		Use:   "schedule",
		Short: "Request a pickup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Type = pickups.WasteType(wasteType)
			p, err := a.pickups.Schedule(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printPickup(p)
			return nil
		},
	}
	schedule.Flags().StringVar(&wasteType, "type", string(pickups.TypeRegular), "Regular, Bulk or Hazardous")
	schedule.Flags().StringSliceVar(&req.Materials, "materials", nil, "comma separated materials")
	schedule.Flags().StringVar(&req.Address, "address", "", "pickup address")
	schedule.Flags().StringVar(&req.Date, "date", "", "pickup date (YYYY-MM-DD)")
	schedule.Flags().StringVar(&req.TimeSlot, "slot", "", "time slot, e.g. 09:00-12:00")
	schedule.Flags().StringVar(&req.Notes, "notes", "", "notes for the collector")

	cancel := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a pickup that has not finished",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pickups.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p, err = a.pickups.Cancel(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Pickup %s is %s\n", p.ID, p.Status)
			return nil
		},
	}

	cmd.AddCommand(list, get, schedule, cancel)
	return cmd
}

// findPickup looks up id in list, as the dashboards do with the rows they already show
func findPickup(list []pickups.Pickup, id string) (pickups.Pickup, error) {
	for _, p := range list {
		if p.ID == id {
			return p, nil
		}
	}
	return pickups.Pickup{}, fmt.Errorf("pickup %s not found", id)
}

func newCollectorCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collector",
		Short: "Collector pickups",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.enter(guard.RouteCollectorDashboard, users.RoleCollector)
		},
	}

	list := &cobra.Command{
		Use:   "pickups",
		Short: "List assigned and open pickups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := a.collector.Assigned(cmd.Context())
			if err != nil {
				return err
			}
			a.printPickups(all)
			return nil
		},
	}

	accept := &cobra.Command{
		Use:   "accept <id>",
		Short: "Accept an open pickup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := a.collector.Assigned(cmd.Context())
			if err != nil {
				return err
			}
			p, err := findPickup(all, args[0])
			if err != nil {
				return err
			}
			p, err = a.collector.Accept(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Pickup %s is %s\n", p.ID, p.Status)
			return nil
		},
	}

	var weight float64
	status := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move an assigned pickup to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := pickups.ParseStatus(args[1])
			if err != nil {
				return err
			}
			all, err := a.collector.Assigned(cmd.Context())
			if err != nil {
				return err
			}
			p, err := findPickup(all, args[0])
			if err != nil {
				return err
			}
			p, err = a.collector.UpdateStatus(cmd.Context(), p, pickups.StatusUpdate{Status: next, WeightKg: weight})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Pickup %s is %s\n", p.ID, p.Status)
			return nil
		},
	}
	status.Flags().Float64Var(&weight, "weight", 0, "collected weight in kg")

	cmd.AddCommand(list, accept, status)
	return cmd
}

func newAdminCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Account and pickup administration",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.enter(guard.RouteAdminDashboard)
		},
	}

	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "List household accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.admin.Users(cmd.Context())
			if err != nil {
				return err
			}
			a.printProfiles(list)
			return nil
		},
	}

	deleteUser := &cobra.Command{
		Use:   "delete-user <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.admin.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %s\n", args[0])
			return nil
		},
	}

	collectors := &cobra.Command{
		Use:   "collectors",
		Short: "List collector accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.admin.Collectors(cmd.Context())
			if err != nil {
				return err
			}
			a.printProfiles(list)
			return nil
		},
	}

	approve := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending collector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.admin.ApproveCollector(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Approved %s (%s)\n", profile.Name, profile.Email)
			return nil
		},
	}

	var statusFilter string
	pickupsCmd := &cobra.Command{
		Use:   "pickups",
		Short: "List every pickup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var status pickups.Status
			if statusFilter != "" {
				st, err := pickups.ParseStatus(statusFilter)
				if err != nil {
					return err
				}
				status = st
			}
			list, err := a.admin.Pickups(cmd.Context(), status)
			if err != nil {
				return err
			}
			a.printPickups(list)
			return nil
		},
	}
	pickupsCmd.Flags().StringVar(&statusFilter, "status", "", "only pickups in this status")

	var weight float64
	pickupStatus := &cobra.Command{
		Use:   "pickup-status <id> <status>",
		Short: "Override the status of any pickup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := pickups.ParseStatus(args[1])
			if err != nil {
				return err
			}
			all, err := a.admin.Pickups(cmd.Context(), "")
			if err != nil {
				return err
			}
			p, err := findPickup(all, args[0])
			if err != nil {
				return err
			}
			p, err = a.admin.UpdatePickupStatus(cmd.Context(), p, pickups.StatusUpdate{Status: next, WeightKg: weight})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Pickup %s is %s\n", p.ID, p.Status)
			return nil
		},
	}
	pickupStatus.Flags().Float64Var(&weight, "weight", 0, "collected weight in kg")

	cmd.AddCommand(usersCmd, deleteUser, collectors, approve, pickupsCmd, pickupStatus)
	return cmd
}
