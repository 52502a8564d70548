package gantry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opnlabs/gantry/pkg/config"
	"github.com/opnlabs/gantry/pkg/models"
	"github.com/opnlabs/gantry/pkg/store"
	"github.com/opnlabs/gantry/pkg/utils"
)

type planOptions struct {
	JobFilePath  string `validate:"required"`
	Ref          string `validate:"required"`
	Tag          bool
	Stage        string
	ShowCommands bool
	Watch        time.Duration
}

var (
	opts     planOptions
	validate *validator.Validate = validator.New(validator.WithRequiredStructEnabled())
	docStore store.Store         = store.NewMemStore()
)

var rootCmd = &cobra.Command{
	Use:   "gantry",
	Short: "Gantry plans CI jobs from a pipeline definition",
	Long: `Gantry parses a pipeline definition file ( default .gantry.yml ) into
stages and jobs, and prints the jobs that would run for a given branch or tag
ref according to their only/except filters.`,

	Run: func(cmd *cobra.Command, args []string) {
		if err := validate.Struct(opts); err != nil {
			log.Fatalf("invalid options:\n%+v", err)
		}
		run()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&opts.JobFilePath, "job-file-path", "f", ".gantry.yml", "Path to the pipeline definition file.")
	rootCmd.Flags().StringVarP(&opts.Ref, "ref", "r", "", "Branch or tag name to plan for.")
	rootCmd.Flags().BoolVarP(&opts.Tag, "tag", "t", false, "Treat the ref as a tag instead of a branch.")
	rootCmd.Flags().StringVarP(&opts.Stage, "stage", "s", "", "Limit the plan to a single stage.")
	rootCmd.Flags().BoolVarP(&opts.ShowCommands, "show-commands", "c", false, "Print the command block of every planned job.")
	rootCmd.Flags().DurationVarP(&opts.Watch, "watch", "w", 0, "Re-read the definition on this interval, keeping the last valid one on error.")

	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run() {
	doc, err := loadDocument(opts.JobFilePath)
	if err != nil {
		log.Fatal(err)
	}
	docStore.Replace(opts.JobFilePath, doc)
	printPlan(doc)

	if opts.Watch <= 0 {
		return
	}
	ticker := time.NewTicker(opts.Watch)
	defer ticker.Stop()
	for range ticker.C {
		doc, err := loadDocument(opts.JobFilePath)
		if err != nil {
			log.Warn("definition invalid, keeping last valid document", "err", err)
			doc, err = docStore.Get(opts.JobFilePath)
			if err != nil {
				log.Fatal(err)
			}
		} else {
			docStore.Replace(opts.JobFilePath, doc)
		}
		printPlan(doc)
	}
}

func loadDocument(path string) (*config.Document, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(contents, &raw); err != nil {
		return nil, err
	}

	return config.New(raw)
}

func printPlan(doc *config.Document) {
	log.Info("job plan", "plan", uuid.NewString(), "ref", opts.Ref, "tag", opts.Tag)

	stages := doc.Stages()
	if opts.Stage != "" {
		stages = []string{opts.Stage}
	}

	var planned []models.Job
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Job", "Stage", "Index", "When", "Allow Failure"})
	for _, stage := range stages {
		jobs, err := doc.JobsFor(stage, opts.Ref, opts.Tag)
		if err != nil {
			log.Fatal(err)
		}
		for _, job := range jobs {
			t.AppendRow(table.Row{slug.Make(job.Name), job.Name, job.Stage, job.StageIndex, job.When, job.AllowFailure})
			planned = append(planned, job)
		}
	}
	t.Render()

	if opts.ShowCommands {
		for _, job := range planned {
			fmt.Fprintln(utils.NewColorLogger(job.Name, os.Stdout, true), job.Commands)
		}
	}
}
