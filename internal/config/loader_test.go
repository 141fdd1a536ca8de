package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/compass/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no environment overrides", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then the defaults apply", func() {
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.DataDir, ShouldEqual, "data")
			So(cfg.MatchThreshold, ShouldEqual, 3)
			So(cfg.DefaultTopN, ShouldEqual, 5)
			So(cfg.QuestionCount, ShouldEqual, 10)
			So(cfg.InterestWeight, ShouldEqual, 0.5)
			So(cfg.AcademicWeight, ShouldEqual, 1.0)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("COMPASS_ADDR", ":7070")
		t.Setenv("COMPASS_MATCH_THRESHOLD", "4.5")
		t.Setenv("COMPASS_DEFAULT_TOP_N", "7")

		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then env beats defaults", func() {
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.MatchThreshold, ShouldEqual, 4.5)
			So(cfg.DefaultTopN, ShouldEqual, 7)
		})

		Convey("Then untouched fields keep their defaults", func() {
			So(cfg.DataDir, ShouldEqual, "data")
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		path := filepath.Join(t.TempDir(), "compass.yaml")
		body := "addr: \":6060\"\nquestion_count: 12\n"
		So(os.WriteFile(path, []byte(body), 0o600), ShouldBeNil)
		t.Setenv("COMPASS_CONFIG", path)

		Convey("Then file values beat defaults", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.QuestionCount, ShouldEqual, 12)
		})

		Convey("And env beats the file", func() {
			t.Setenv("COMPASS_ADDR", ":5050")
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":5050")
		})
	})

	Convey("Given a missing config file path", t, func() {
		t.Setenv("COMPASS_CONFIG", "/does/not/exist.yaml")
		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given invalid settings", t, func() {
		cases := map[string]string{
			"COMPASS_ADDR":            "",
			"COMPASS_MATCH_THRESHOLD": "0",
			"COMPASS_DEFAULT_TOP_N":   "0",
			"COMPASS_QUESTION_COUNT":  "-1",
			"COMPASS_MAX_RESULTS":     "0",
			"COMPASS_INTEREST_WEIGHT": "-0.5",
		}
		for key, value := range cases {
			Convey("Then "+key+"="+value+" is rejected", func() {
				t.Setenv(key, value)
				_, err := config.Load(context.Background())
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		}
	})
}
