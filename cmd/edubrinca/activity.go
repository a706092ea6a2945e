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
	actSubject   string
	actTheme     string
	actType      string
	actCount     int
	actLevel     string
	actGrade     string
	actGuideline string
	actJSON      bool
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Generate and save an activity sheet",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		subject, err1 := core.ParseSubject(actSubject)
		kind, err2 := core.ParseActivityType(actType)
		level, err3 := core.ParseClassLevel(actLevel)
		grade, err4 := core.ParseGradeLevel(actGrade)
		if err := errors.Join(err1, err2, err3, err4); err != nil {
			fatal("Invalid request", err)
		}

		app := openApp()
		defer app.Close()

		sheet, mode, err := app.Generator.GenerateActivity(context.Background(), edubrinca.ActivityRequest{
			Subject:    subject,
			Theme:      actTheme,
			Type:       kind,
			Count:      actCount,
			Level:      level,
			GradeLevel: grade,
			Guideline:  actGuideline,
		})
		if err != nil {
			fatal("Failed to generate activity sheet", err)
		}

		if actJSON {
			printJSON(sheet)
			return
		}
		writeActivity(os.Stdout, sheet)
		printf("\nSaved %s (%s)\n", sheet.ID, mode)
	},
}

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.Flags().StringVarP(&actSubject, "subject", "s", string(core.SubjectPortugues), "Subject")
	activityCmd.Flags().StringVarP(&actTheme, "theme", "t", "", "Theme of the sheet")
	activityCmd.Flags().StringVar(&actType, "type", string(core.ActivityComplete), "Activity type, e.g. Complete, Ligue, MultiplaEscolha")
	activityCmd.Flags().IntVarP(&actCount, "count", "n", 5, "Number of questions")
	activityCmd.Flags().StringVarP(&actLevel, "level", "l", string(core.LevelRegular), "Class level: Reforço, Regular or Avançada")
	activityCmd.Flags().StringVarP(&actGrade, "grade", "g", "3", "Grade: 2, 3 or 4")
	activityCmd.Flags().StringVar(&actGuideline, "guideline", "", "Extra guidance for the remote model")
	activityCmd.Flags().BoolVar(&actJSON, "json", false, "Output in JSON format")
	_ = activityCmd.MarkFlagRequired("theme")
}
