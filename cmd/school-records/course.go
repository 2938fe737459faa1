package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
)

func newCourseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "course",
		Aliases: []string{"courses"},
		Short:   "Find, list, add, update, and delete courses",
	}
	cmd.AddCommand(
		newCourseGetCmd(a),
		newCourseFindCmd(a),
		newCourseListCmd(a),
		newCourseAddCmd(a),
		newCourseUpdateCmd(a),
		newCourseDeleteCmd(a),
	)
	return cmd
}

func newCourseGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show the course with the given ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, found, err := a.courses.FindCourseByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "Course with ID %d not found.\n", id)
				return nil
			}
			printCourse(cmd, c)
			return nil
		},
	}
}

func newCourseFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <name>",
		Short: "Show the course with exactly this name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, found, err := a.courses.FindCourseByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "Course %q not found.\n", args[0])
				return nil
			}
			printCourse(cmd, c)
			return nil
		},
	}
}

func newCourseListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all course names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := a.courses.GetAllCourses(cmd.Context())
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No courses found.")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newCourseAddCmd(a *app) *cobra.Command {
	var c types.Course
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a course for a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.courses.AddCourse(cmd.Context(), &c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Course added successfully with ID: %d\n", id)
			return nil
		},
	}
	bindCourseFlags(cmd, &c)
	return cmd
}

func newCourseUpdateCmd(a *app) *cobra.Command {
	var c types.Course
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace the name and student of an existing course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c.ID = id
			outcome, err := a.courses.UpdateCourse(cmd.Context(), &c)
			if err != nil {
				return err
			}
			if outcome == storage.NotFound {
				fmt.Fprintf(cmd.OutOrStdout(), "Course with ID %d not found.\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Course %d updated.\n", id)
			return nil
		},
	}
	bindCourseFlags(cmd, &c)
	return cmd
}

func newCourseDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd, fmt.Sprintf("Remove course with ID %d?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			outcome, err := a.courses.DeleteCourseByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if outcome == storage.NotFound {
				fmt.Fprintf(cmd.OutOrStdout(), "Course with ID %d not found.\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Course with ID %d has been deleted.\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func bindCourseFlags(cmd *cobra.Command, c *types.Course) {
	f := cmd.Flags()
	f.StringVar(&c.Name, "name", "", "course name")
	f.Int64Var(&c.StudentID, "student-id", 0, "ID of the student taking the course")
}

func printCourse(cmd *cobra.Command, c types.Course) {
	fmt.Fprintf(cmd.OutOrStdout(), "ID: %d\nName: %s\nStudent ID: %d\n", c.ID, c.Name, c.StudentID)
}
