package cmd

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/trknhr/ghostchat/internal/config"
	"github.com/trknhr/ghostchat/internal/logger"
	"github.com/trknhr/ghostchat/internal/model"
	"github.com/trknhr/ghostchat/internal/model/ngram"
)

type BatchRecord struct {
	Input    string `json:"input"`
	Response string `json:"response,omitempty"`
}

func newBatchCmd(a *app) *cobra.Command {
	var inFile, outFile string
	var workers int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Answer every prompt in a file",
		Example: `
  # JSONL lines like {"input": "hi"}
  ghostchat batch -f prompts.jsonl -o replies.jsonl

  # CSV (first column) or plain text (one prompt per line)
  ghostchat batch -f prompts.csv --workers 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("workers") {
				a.cfg.Batch.Workers = workers
			}
			if a.cfg.Batch.Workers <= 0 {
				return fmt.Errorf("--workers must be positive, got %d", a.cfg.Batch.Workers)
			}

			inputs, err := loadBatchInputs(inFile)
			if err != nil {
				return fmt.Errorf("failed to load prompts: %w", err)
			}
			logger.Info("loaded %d prompts from %s", len(inputs), inFile)

			ctx := cmd.Context()
			models, err := a.buildModels(ctx)
			if err != nil {
				return err
			}

			records, err := RunBatch(ctx, models, a.cfg.Model, inputs, a.cfg.Batch.Workers)
			if err != nil {
				return err
			}

			if outFile == "" {
				return writeBatchRecords(cmd.OutOrStdout(), records)
			}
			return writeBatchFile(outFile, records)
		},
	}

	cmd.Flags().StringVarP(&inFile, "file", "f", "", "Path to JSONL, CSV or text file of prompts")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write JSONL results here instead of stdout")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of prompts answered concurrently (default from config)")
	cmd.MarkFlagRequired("file")

	return cmd
}

// RunBatch answers inputs concurrently and returns the records in input
// order. Every prompt gets its own seed derived from cfg.Seed, so with a
// fixed seed results do not depend on scheduling.
func RunBatch(ctx context.Context, models *ngram.Collection, cfg config.ModelConfig, inputs []string, workers int) ([]BatchRecord, error) {
	records := make([]BatchRecord, len(inputs))
	seeds := batchSeeds(cfg.Seed, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c := cfg
			c.Seed = seeds[i]
			records[i] = BatchRecord{
				Input:    input,
				Response: model.NewGenerator(models, c).Answer(input),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// batchSeeds returns n distinct non-zero seeds counting up from base. A zero
// base reads the clock once.
func batchSeeds(base uint64, n int) []uint64 {
	if base == 0 {
		base = uint64(time.Now().UnixNano())
	}
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = base + uint64(i)
		if seeds[i] == 0 {
			seeds[i] = base + uint64(n)
		}
	}
	return seeds
}

func writeBatchFile(path string, records []BatchRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeBatchRecords(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeBatchRecords(w io.Writer, records []BatchRecord) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func loadBatchInputs(filePath string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".jsonl":
		return loadInputsFromJSONL(filePath)
	case ".csv":
		return loadInputsFromCSV(filePath)
	default:
		return loadInputsFromText(filePath)
	}
}

func loadInputsFromJSONL(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var inputs []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var r BatchRecord
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", lineNum, err)
		}
		if r.Input == "" {
			fmt.Fprintf(os.Stderr, "⚠️  Skipping line %d without input\n", lineNum)
			continue
		}
		inputs = append(inputs, r.Input)
	}
	return inputs, scanner.Err()
}

func loadInputsFromCSV(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var inputs []string
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		input := strings.TrimSpace(record[0])
		if i == 0 && strings.EqualFold(input, "input") {
			continue
		}
		if input != "" {
			inputs = append(inputs, input)
		}
	}
	return inputs, nil
}

func loadInputsFromText(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var inputs []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			inputs = append(inputs, line)
		}
	}
	return inputs, scanner.Err()
}
