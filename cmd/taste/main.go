// Copyright 2025 taste Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tastekit/taste/base"
	"github.com/tastekit/taste/base/log"
	"github.com/tastekit/taste/config"
	"github.com/tastekit/taste/dataset"
	"github.com/tastekit/taste/model"
)

var versionName = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "taste",
	Short: "taste: item-to-item collaborative filtering over play counts",
	Long: "taste builds an item-to-item similarity matrix from sparse play-count " +
		"history and evaluates top-k recommendations against a held-out split.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Check the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionName)
	},
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Fit both similarity variants and evaluate against the hidden split",
	Run: func(cmd *cobra.Command, args []string) {
		// setup logger
		debug, _ := cmd.PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.PersistentFlags(), debug)
		// load config
		configPath, _ := cmd.PersistentFlags().GetString("config")
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err = runEval(ctx, conf); err != nil {
			log.Logger().Fatal("evaluation failed", zap.Error(err))
		}
	},
}

func runEval(ctx context.Context, conf *config.Config) error {
	// load visible/hidden split
	visible, hidden, err := dataset.LoadSplit(conf.Dataset.Visible, conf.Dataset.Hidden)
	if err != nil {
		return err
	}
	log.Logger().Info("dataset loaded",
		zap.Int("n_users", visible.CountUsers()),
		zap.Int("n_items", visible.CountItems()))
	matrix := visible.Build()
	// fit or fetch similarity matrices
	cache := &model.SimilarityCache{Dir: conf.Similarity.CacheDir}
	key := model.CacheKey{Users: matrix.Users(), Items: matrix.Items()}
	key.Name = "cosine"
	cosine, err := cache.Fetch(key, func() (*model.SimilarityMatrix, error) {
		return model.FitCosine(ctx, matrix, conf.Similarity.Jobs)
	})
	if err != nil {
		return err
	}
	key.Name = "cooccurrence"
	cooccurrence, err := cache.Fetch(key, func() (*model.SimilarityMatrix, error) {
		return model.FitCooccurrence(ctx, matrix, conf.Similarity.Jobs)
	})
	if err != nil {
		return err
	}
	// evaluate
	k := conf.Recommend.TopK
	cosineKNN := model.NewKNN(matrix, cosine, visible.UserIndex, visible.ItemIndex)
	cooccurrenceKNN := model.NewKNN(matrix, cooccurrence, visible.UserIndex, visible.ItemIndex)
	rng := base.NewRandomGenerator(conf.Evaluate.Seed)
	report := model.NewReport(
		model.EvaluateJaccard(cosineKNN, hidden, k),
		model.EvaluateJaccard(cooccurrenceKNN, hidden, k),
		model.RandomBaseline(rng, hidden, matrix.Items(), k))
	log.Logger().Info("evaluation complete",
		zap.Int("top_k", k),
		zap.Float64("jaccard_cosine", report.Cosine),
		zap.Float64("jaccard_cooccurrence", report.Cooccurrence),
		zap.Float64("jaccard_random", report.Random),
		zap.Float64("lift_cosine", report.CosineLift),
		zap.Float64("lift_cooccurrence", report.CooccurrenceLift))
	return nil
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(evalCmd)
	evalCmd.PersistentFlags().String("config", "config.toml", "path of config file")
	evalCmd.PersistentFlags().Bool("debug", false, "use debug log mode")
	log.AddFlags(evalCmd.PersistentFlags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Logger().Fatal("failed to execute command", zap.Error(err))
	}
}
