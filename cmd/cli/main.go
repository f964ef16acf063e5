package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"anonsurvey/adapters/discovery"
	"anonsurvey/adapters/excel"
	"anonsurvey/adapters/postgres"
	"anonsurvey/app"
	"anonsurvey/domain/core"
	"anonsurvey/domain/survey"
	"anonsurvey/internal/config"
	"anonsurvey/ports"
)

func main() {
	// Optional .env for local runs
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "anonsurvey",
		Short: "Anonymize paired survey workbooks and run paired t-tests",
	}

	rootCmd.AddCommand(newAnalyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		idColumn         string
		scoringFile      string
		stripPrefix      bool
		anonymize        bool
		overwrite        bool
		allowMissingPost bool
		color            bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [folder]",
		Short: "Clean and analyze every Pre/Post survey pair in a folder",
		Long: `Scan a folder for Pre*.xlsx / Post*.xlsx survey pairs, anonymize
student identifiers, recode categorical answers per the scoring workbook,
and compute paired t-tests per question and per student.

Example: anonsurvey analyze ./data --strip-prefix --anonymize`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.Surveys.Folder = args[0]
			if cmd.Flags().Changed("column") {
				cfg.Surveys.IDColumn = idColumn
			}
			if cmd.Flags().Changed("scoring") {
				cfg.Surveys.ScoringFile = scoringFile
			}
			if cmd.Flags().Changed("strip-prefix") {
				cfg.Surveys.StripPrefix = stripPrefix
			}
			if cmd.Flags().Changed("anonymize") {
				cfg.Surveys.Anonymize = anonymize
			}
			if cmd.Flags().Changed("overwrite") {
				cfg.Surveys.Overwrite = overwrite
			}
			if cmd.Flags().Changed("color") {
				cfg.Surveys.Color = color
			}
			return runAnalyze(cmd.Context(), cfg, allowMissingPost)
		},
	}

	cmd.Flags().StringVar(&idColumn, "column", "Your student number", "Column holding the raw student identifier")
	cmd.Flags().StringVar(&scoringFile, "scoring", "Scoring.xlsx", "Workbook holding the category scoring sheet")
	cmd.Flags().BoolVar(&stripPrefix, "strip-prefix", false, "Strip a leading non-numeric character from identifiers before hashing")
	cmd.Flags().BoolVar(&anonymize, "anonymize", false, "Emit student_NN pseudonyms instead of hashes in output")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Remove previous result workbooks before running")
	cmd.Flags().BoolVar(&allowMissingPost, "allow-missing-post", false, "Clean pre-surveys that have no matching post-survey")
	cmd.Flags().BoolVar(&color, "color", true, "Fill significant p-value cells in analysis output")

	return cmd
}

func runAnalyze(ctx context.Context, cfg *config.Config, allowMissingPost bool) error {
	folder := cfg.Surveys.Folder

	if cfg.Surveys.Overwrite {
		if err := discovery.RemovePreviousResults(folder); err != nil {
			return err
		}
	}

	finder := discovery.NewFinder()
	pairs, err := finder.FindPairs(folder, allowMissingPost)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		fmt.Println("No survey workbooks found")
		return nil
	}

	scoring, err := excel.NewScoringReader("Scoring").
		ReadScoring(filepath.Join(folder, cfg.Surveys.ScoringFile))
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	reader := excel.NewSurveyReader(cfg.Surveys.IDColumn)
	writer := excel.NewResultWriter(cfg.Surveys.Color)
	pipeline := app.NewPipeline()
	opts := app.Options{
		StripPrefix: cfg.Surveys.StripPrefix,
		Anonymize:   cfg.Surveys.Anonymize,
	}

	// Pairs are independent; process them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			return processPair(gctx, pair, i+1, cfg, reader, writer, pipeline, scoring, opts, store)
		})
	}
	return g.Wait()
}

func processPair(ctx context.Context, pair ports.SurveyPair, sequence int,
	cfg *config.Config, reader *excel.SurveyReader, writer *excel.ResultWriter,
	pipeline *app.Pipeline, scoring *survey.ScoringTable, opts app.Options, store ports.RunStore) error {

	folder := cfg.Surveys.Folder
	dataName := discovery.DataName(pair.Pre, sequence)
	cleanedPath, analysisPath := discovery.OutputPaths(folder, dataName)
	if !cfg.Surveys.Overwrite && discovery.Exists(cleanedPath) {
		log.Printf("[Analyze] %s exists, skipping (use --overwrite)", cleanedPath)
		return nil
	}

	rawPre, err := reader.ReadSurvey(pair.Pre)
	if err != nil {
		return err
	}
	// A pair without a post survey still gets cleaned; alignment then
	// reports a structural condition and the t-test phase is skipped.
	rawPost := survey.NewRawTable(rawPre.Questions)
	if pair.HasPost() {
		if rawPost, err = reader.ReadSurvey(pair.Post); err != nil {
			return err
		}
	}

	clean, result, err := pipeline.Run(rawPre, rawPost, scoring, opts)
	if err != nil && !core.IsStructuralError(err) {
		return err
	}

	for _, diag := range clean.Diagnostics {
		log.Printf("[Analyze] unmapped answer %q for %q", diag.Value, diag.Question)
	}

	if werr := writer.WriteCleaned(cleanedPath, clean); werr != nil {
		return werr
	}

	if err != nil {
		// Structural alignment failure: cleaned data written, t-tests skipped.
		log.Printf("[Analyze] %s: analysis skipped: %v", dataName, err)
		return nil
	}

	if werr := writer.WriteAnalysis(analysisPath, *result); werr != nil {
		return werr
	}

	if store != nil {
		if serr := archiveRun(ctx, store, folder, pair, *result); serr != nil {
			log.Printf("[Analyze] failed to archive run: %v", serr)
		}
	}
	return nil
}

func archiveRun(ctx context.Context, store ports.RunStore, folder string, pair ports.SurveyPair, result app.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return store.SaveRun(ctx, ports.RunRecord{
		ID:       result.RunID,
		Folder:   folder,
		PreFile:  filepath.Base(pair.Pre),
		PostFile: filepath.Base(pair.Post),
		Payload:  payload,
	})
}

func openStore(ctx context.Context, cfg *config.Config) (ports.RunStore, func(), error) {
	if !cfg.Database.Enabled {
		return nil, func() {}, nil
	}
	db, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return postgres.NewRunStore(db), func() { db.Close() }, nil
}
