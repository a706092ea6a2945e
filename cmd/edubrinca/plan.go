package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/edubrinca"
	"github.com/aretw0/edubrinca/pkg/core"
)

var (
	planSubject   string
	planTheme     string
	planDuration  int
	planLevel     string
	planGrade     string
	planObjective string
	planJSON      bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and save a lesson plan",
	Long: `Generate a lesson plan for one class and save it in the store.
The remote model is tried once; on any failure the local templates are used.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		subject, err1 := core.ParseSubject(planSubject)
		level, err2 := core.ParseClassLevel(planLevel)
		grade, err3 := core.ParseGradeLevel(planGrade)
		if err := errors.Join(err1, err2, err3); err != nil {
			fatal("Invalid request", err)
		}

		app := openApp()
		defer app.Close()

		plan, mode, err := app.Generator.GeneratePlan(context.Background(), edubrinca.LessonPlanRequest{
			Subject:    subject,
			Theme:      planTheme,
			Duration:   planDuration,
			Level:      level,
			GradeLevel: grade,
			Objective:  planObjective,
		})
		if err != nil {
			fatal("Failed to generate lesson plan", err)
		}

		if planJSON {
			printJSON(plan)
			return
		}
		writePlan(os.Stdout, plan)
		printf("\nSaved %s (%s)\n", plan.ID, mode)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVarP(&planSubject, "subject", "s", string(core.SubjectPortugues), "Subject")
	planCmd.Flags().StringVarP(&planTheme, "theme", "t", "", "Theme of the class")
	planCmd.Flags().IntVarP(&planDuration, "duration", "d", 50, "Duration in minutes")
	planCmd.Flags().StringVarP(&planLevel, "level", "l", string(core.LevelRegular), "Class level: Reforço, Regular or Avançada")
	planCmd.Flags().StringVarP(&planGrade, "grade", "g", "3", "Grade: 2, 3 or 4")
	planCmd.Flags().StringVar(&planObjective, "objective", "", "Replace the generated objective")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Output in JSON format")
	_ = planCmd.MarkFlagRequired("theme")
}
