package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/bgexplorer/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.DatasetSource, convey.ShouldEqual, "data/board_game.csv")
			convey.So(cfg.DatasetTable, convey.ShouldEqual, "board_games")
			convey.So(cfg.MinYear, convey.ShouldEqual, 1950)
			convey.So(cfg.MinUsersRated, convey.ShouldEqual, 50)
			convey.So(cfg.TopK, convey.ShouldEqual, 5)
			convey.So(cfg.FilterLimit, convey.ShouldEqual, 10)
			convey.So(cfg.MaxFilterLimit, convey.ShouldEqual, 100)
			convey.So(cfg.ReloadInterval, convey.ShouldEqual, time.Duration(0))
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a valid default config", t, func() {
		cfg := config.New(context.Background())

		cases := []struct {
			name   string
			mutate func(*config.Config)
			want   string
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }, "addr must not be empty"},
			{"empty source", func(c *config.Config) { c.DatasetSource = "" }, "dataset_source must not be empty"},
			{"zero min year", func(c *config.Config) { c.MinYear = 0 }, "min_year must be positive"},
			{"zero top k", func(c *config.Config) { c.TopK = 0 }, "top_k must be positive"},
			{"zero filter limit", func(c *config.Config) { c.FilterLimit = 0 }, "filter_limit must be positive"},
			{"cap below default", func(c *config.Config) { c.MaxFilterLimit = 5 }, "max_filter_limit"},
			{"negative cache", func(c *config.Config) { c.QueryCacheSize = -1 }, "query_cache_size"},
			{"zero chart size", func(c *config.Config) { c.ChartWidth = 0 }, "chart_width"},
			{"negative reload", func(c *config.Config) { c.ReloadInterval = -time.Second }, "reload_interval"},
		}

		for _, tc := range cases {
			convey.Convey("When the config has "+tc.name, func() {
				c := *cfg
				tc.mutate(&c)
				err := c.Validate()

				convey.Convey("Then validation should fail with ErrInvalidConfig", func() {
					convey.So(err, convey.ShouldNotBeNil)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
					convey.So(err.Error(), convey.ShouldContainSubstring, tc.want)
				})
			})
		}
	})
}
