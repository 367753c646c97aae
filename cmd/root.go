package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trknhr/ghostchat/internal/config"
	"github.com/trknhr/ghostchat/internal/logger"
	"github.com/trknhr/ghostchat/internal/model"
	"github.com/trknhr/ghostchat/internal/model/ngram"
	"github.com/trknhr/ghostchat/internal/store"
	"github.com/trknhr/ghostchat/internal/worker"
)

var errNoDB = errors.New("this command needs the database (remove --no-db)")

type rootFlags struct {
	configPath string
	logLevel   string
	logFile    string
	dbPath     string
	noDB       bool
	seed       uint64
	maxLength  int
}

// app carries what PersistentPreRunE sets up for the subcommands.
type app struct {
	flags rootFlags

	cfg         *config.Config
	db          *sql.DB
	corpus      store.CorpusStore
	meta        worker.MetaTracker
	transcripts store.TranscriptStore
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "ghostchat",
		Short:         "Chat with an n-gram dialogue model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd, false)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.flags.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	f.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error, none")
	f.StringVar(&a.flags.logFile, "log-file", "", "also write logs to this file")
	f.StringVar(&a.flags.dbPath, "db", "", "database path (default "+config.DefaultDBPath()+")")
	f.BoolVar(&a.flags.noDB, "no-db", false, "run without the database")
	f.Uint64Var(&a.flags.seed, "seed", 0, "random seed, 0 seeds from the clock")
	f.IntVar(&a.flags.maxLength, "max-length", 0, "maximum number of words generated per reply")

	cmd.AddCommand(
		newChatCmd(a),
		newAskCmd(a),
		newBatchCmd(a),
		newCorpusCmd(a),
		newHistoryCmd(a),
	)
	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.flags.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = a.flags.logFile
	}
	if flags.Changed("db") {
		cfg.Database.Path = a.flags.dbPath
	}
	if flags.Changed("no-db") {
		cfg.Database.Disabled = a.flags.noDB
	}
	if flags.Changed("seed") {
		cfg.Model.Seed = a.flags.seed
	}
	if flags.Changed("max-length") {
		cfg.Model.MaxLength = a.flags.maxLength
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logger.Init(cfg.Log.File, cfg.Log.Level); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	a.cfg = cfg

	if cfg.Database.Disabled {
		logger.Debug("database disabled")
		return nil
	}
	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	a.db = db
	a.corpus = store.NewSQLCorpusStore(db)
	a.meta = store.NewMetaStore(db)
	a.transcripts = store.NewSQLTranscriptStore(db)
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *app) requireDB() error {
	if a.db == nil {
		return errNoDB
	}
	return nil
}

func (a *app) loadCorpus(ctx context.Context) (string, error) {
	return model.LoadCorpus(ctx, a.cfg.Corpus.Paths, a.corpus, a.meta)
}

// buildModels loads the corpus and waits for the model build.
func (a *app) buildModels(ctx context.Context) (*ngram.Collection, error) {
	text, err := a.loadCorpus(ctx)
	if err != nil {
		return nil, err
	}
	return model.Wait(model.GenerateModel(text, a.cfg.Model))
}

func (a *app) saveExchange(ctx context.Context, prompt, reply string) {
	if a.transcripts == nil {
		return
	}
	if err := a.transcripts.SaveExchange(ctx, prompt, reply); err != nil {
		logger.WarnOnce("transcript", "failed to save exchange: %v", err)
	}
}
