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

package config

import (
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Config is the configuration for the pipeline.
type Config struct {
	Dataset    DatasetConfig    `mapstructure:"dataset"`
	Similarity SimilarityConfig `mapstructure:"similarity"`
	Recommend  RecommendConfig  `mapstructure:"recommend"`
	Evaluate   EvaluateConfig   `mapstructure:"evaluate"`
}

// DatasetConfig locates the visible/hidden split. Both files hold
// tab-separated "user\tsong\tcount" records.
type DatasetConfig struct {
	Visible string `mapstructure:"visible"`
	Hidden  string `mapstructure:"hidden"`
}

// SimilarityConfig configures the similarity fitters.
type SimilarityConfig struct {
	Jobs     int    `mapstructure:"jobs"`
	CacheDir string `mapstructure:"cache_dir"`
}

// RecommendConfig configures the recommender.
type RecommendConfig struct {
	TopK int `mapstructure:"top_k"`
}

// EvaluateConfig configures the evaluation run.
type EvaluateConfig struct {
	Seed int64 `mapstructure:"seed"`
}

func setDefault(v *viper.Viper) {
	v.SetDefault("similarity.jobs", 1)
	v.SetDefault("similarity.cache_dir", "cache")
	v.SetDefault("recommend.top_k", 10)
	v.SetDefault("evaluate.seed", 0)
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefault(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Annotatef(err, "failed to read config %q", path)
	}
	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

// Validate checks the configuration.
func (conf *Config) Validate() error {
	if conf.Dataset.Visible == "" {
		return errors.NotValidf("empty dataset.visible")
	}
	if conf.Dataset.Hidden == "" {
		return errors.NotValidf("empty dataset.hidden")
	}
	if conf.Similarity.Jobs < 1 {
		return errors.NotValidf("similarity.jobs = %d", conf.Similarity.Jobs)
	}
	if conf.Recommend.TopK < 1 {
		return errors.NotValidf("recommend.top_k = %d", conf.Recommend.TopK)
	}
	return nil
}
