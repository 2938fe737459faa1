package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
)

func newStudentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "student",
		Aliases: []string{"students"},
		Short:   "Find, list, register, update, and delete students",
	}
	cmd.AddCommand(
		newStudentGetCmd(a),
		newStudentFindCmd(a),
		newStudentListCmd(a),
		newStudentAddCmd(a),
		newStudentUpdateCmd(a),
		newStudentDeleteCmd(a),
	)
	return cmd
}

func newStudentGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show the student with the given ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, found, err := a.students.FindStudentByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "Student with ID %d not found.\n", id)
				return nil
			}
			printStudent(cmd, st)
			return nil
		},
	}
}

func newStudentFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <last-name>",
		Short: "Show the first student with the given last name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, found, err := a.students.FindStudentByLastName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "Student with last name %q not found.\n", args[0])
				return nil
			}
			printStudent(cmd, st)
			return nil
		},
	}
}

func newStudentListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			students, err := a.students.ListStudents(cmd.Context())
			if err != nil {
				return err
			}
			if len(students) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No students found.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFIRST NAME\tLAST NAME\tEMAIL\tPHONE\tDATE OF BIRTH\tGRADE")
			for _, st := range students {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					st.ID, st.FirstName, st.LastName, st.Email, st.PhoneNumber, st.DateOfBirth, st.Grade)
			}
			return tw.Flush()
		},
	}
}

func newStudentAddCmd(a *app) *cobra.Command {
	var in types.StudentInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.students.AddStudent(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Student registered successfully with ID: %d\n", id)
			return nil
		},
	}
	bindStudentFlags(cmd, &in)
	return cmd
}

func newStudentUpdateCmd(a *app) *cobra.Command {
	var in types.StudentInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace every field of an existing student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			outcome, err := a.students.UpdateStudent(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			if outcome == storage.NotFound {
				fmt.Fprintf(cmd.OutOrStdout(), "Student with ID %d not found.\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Student %d updated.\n", id)
			return nil
		},
	}
	bindStudentFlags(cmd, &in)
	return cmd
}

func newStudentDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd, fmt.Sprintf("Remove student with ID %d?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			outcome, err := a.students.DeleteStudentByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if outcome == storage.NotFound {
				fmt.Fprintf(cmd.OutOrStdout(), "Student with ID %d not found.\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Student with ID %d has been deleted.\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// bindStudentFlags registers one flag per StudentInput field. Presence is
// checked by the service, not by cobra, so every missing field is
// reported the same way whether it came from HTTP or the CLI.
func bindStudentFlags(cmd *cobra.Command, in *types.StudentInput) {
	f := cmd.Flags()
	f.StringVar(&in.FirstName, "first-name", "", "first name")
	f.StringVar(&in.LastName, "last-name", "", "last name")
	f.StringVar(&in.Email, "email", "", "email address")
	f.StringVar(&in.Grade, "grade", "", "grade level")
	f.StringVar(&in.PhoneNumber, "phone", "", "phone number")
	f.StringVar(&in.DateOfBirth, "dob", "", "date of birth (YYYY-MM-DD)")
}

func printStudent(cmd *cobra.Command, st types.Student) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", st.ID)
	fmt.Fprintf(tw, "First name:\t%s\n", st.FirstName)
	fmt.Fprintf(tw, "Last name:\t%s\n", st.LastName)
	fmt.Fprintf(tw, "Email:\t%s\n", st.Email)
	fmt.Fprintf(tw, "Grade:\t%s\n", st.Grade)
	fmt.Fprintf(tw, "Phone:\t%s\n", st.PhoneNumber)
	fmt.Fprintf(tw, "Date of birth:\t%s\n", st.DateOfBirth)
	_ = tw.Flush()
}
