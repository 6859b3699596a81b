package main

import (
	"fmt"
	"park-course-service/internal/adapters/repositories"
	"park-course-service/internal/domain"
	"park-course-service/internal/services"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, _, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		fmt.Fprintln(cmd.OutOrStdout(), "Initializing database schema...")
		if err := repositories.InitSchema(database); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Schema ready.")
		return nil
	},
}

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and load the park map from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, dialect, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		path := seedFile
		if path == "" {
			path = cfg.MapSeedPath
		}

		if err := repositories.InitSchema(database); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Seeding database from %s...\n", path)
		if err := repositories.SeedFromJSON(cmd.Context(), database, dialect, path); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Seeding complete.")
		return nil
	},
}

var (
	planCriterion string
	planBike      bool
	planStops     []int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute the best course through the given points of interest",
	RunE: func(cmd *cobra.Command, args []string) error {
		criterion, err := domain.ParseCriterion(planCriterion)
		if err != nil {
			return err
		}
		if len(planStops) > cfg.MaxMandatoryStops {
			return fmt.Errorf("at most %d points of interest can be selected", cfg.MaxMandatoryStops)
		}

		database, dialect, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		provider, err := (&repositories.MapRepository{DB: database, Dialect: dialect}).LoadMap(cmd.Context())
		if err != nil {
			return err
		}

		session := services.NewSession(provider, services.WithLogger(newLogger()))
		plan, err := session.Plan(cmd.Context(), criterion, planBike, planStops)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), plan.String())
		return nil
	},
}

var statsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show ticket counts and the most visited points of interest",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, dialect, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		provider, err := (&repositories.MapRepository{DB: database, Dialect: dialect}).LoadMap(cmd.Context())
		if err != nil {
			return err
		}

		stats := services.NewStatisticsService(&repositories.StatisticsRepository{DB: database, Dialect: dialect}, nil)
		summary, err := stats.Summary(cmd.Context(), provider, statsLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Sold foot tickets: %d\n", summary.Tickets.Foot)
		fmt.Fprintf(out, "Sold bike tickets: %d\n", summary.Tickets.Bike)
		fmt.Fprintf(out, "Top %d visited points of interest:\n", statsLimit)
		for i, v := range summary.TopVisited {
			fmt.Fprintf(out, "\t%d - Name: %s; Visits: %d\n", i+1, v.PointOfInterest.Name, v.Visits)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "park map JSON file (default: MAP_SEED_PATH)")

	planCmd.Flags().StringVar(&planCriterion, "criterion", string(domain.CriterionCost), "cost or distance")
	planCmd.Flags().BoolVar(&planBike, "bike", false, "only use connections navigable by bike")
	planCmd.Flags().IntSliceVar(&planStops, "stops", nil, "comma separated point of interest ids to visit")
	_ = planCmd.MarkFlagRequired("stops")

	statsCmd.Flags().IntVar(&statsLimit, "limit", 10, "number of points of interest to list")
}
