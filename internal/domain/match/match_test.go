package match_test

import (
	"context"
	"testing"

	"github.com/okian/compass/internal/domain/catalog"
	"github.com/okian/compass/internal/domain/match"
	"github.com/okian/compass/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func testCatalog() *catalog.Catalog {
	affinity := []model.AffinityRow{
		{RoleName: "Backend Developer", Weights: map[string]float64{"python": 2, "django": 2, "sql": 1}},
		{RoleName: "Data Analyst", Weights: map[string]float64{"sql": 2, "excel": 2, "python": 1}},
		{RoleName: "Frontend Developer", Weights: map[string]float64{"react": 2, "css": 1}},
	}
	return catalog.New(nil, affinity, nil)
}

func TestMatchThreshold(t *testing.T) {
	Convey("Given a matcher over the test catalog", t, func() {
		m := match.New()
		cat := testCatalog()
		ctx := context.Background()

		Convey("When the summed affinity exceeds the threshold", func() {
			// python(2) + django(2) = 4 for Backend Developer
			roles, err := m.MatchThreshold(ctx, cat, model.NewSkillSet("python", "django"), 3)
			So(err, ShouldBeNil)
			So(roles, ShouldResemble, []string{"Backend Developer"})
		})

		Convey("When the summed affinity equals the threshold exactly", func() {
			// sql(2) + python(1) = 3 for Data Analyst
			roles, err := m.MatchThreshold(ctx, cat, model.NewSkillSet("sql", "python"), 3)
			So(err, ShouldBeNil)
			So(roles, ShouldContain, "Data Analyst")
			So(roles, ShouldContain, "Backend Developer") // python(2)+sql(1) = 3
		})

		Convey("When no role reaches the threshold", func() {
			roles, err := m.MatchThreshold(ctx, cat, model.NewSkillSet("css"), 3)
			So(err, ShouldBeNil)
			So(roles, ShouldBeEmpty)
		})

		Convey("When the skill set is empty", func() {
			roles, err := m.MatchThreshold(ctx, cat, model.NewSkillSet(), 3)
			So(err, ShouldBeNil)
			So(roles, ShouldBeEmpty)
		})

		Convey("When skills are unknown to every role", func() {
			roles, err := m.MatchThreshold(ctx, cat, model.NewSkillSet("basket weaving", "juggling"), 3)
			So(err, ShouldBeNil)
			So(roles, ShouldBeEmpty)
		})

		Convey("When the threshold is non-positive", func() {
			_, err := m.MatchThreshold(ctx, cat, model.NewSkillSet("python"), 0)
			So(err, ShouldEqual, match.ErrInvalidThreshold)

			_, err = m.MatchThreshold(ctx, cat, model.NewSkillSet("python"), -1)
			So(err, ShouldEqual, match.ErrInvalidThreshold)
		})

		Convey("Then no returned role scores below the threshold", func() {
			skills := model.NewSkillSet("python", "sql", "react")
			roles, err := m.MatchThreshold(ctx, cat, skills, 3)
			So(err, ShouldBeNil)
			for _, role := range roles {
				var sum float64
				for _, s := range skills.Labels() {
					sum += cat.Affinity(role, s)
				}
				So(sum, ShouldBeGreaterThanOrEqualTo, 3)
			}
		})
	})
}

func TestMatchDefaults(t *testing.T) {
	Convey("Given a matcher with a configured default threshold", t, func() {
		m := match.New(match.WithThreshold(5))
		cat := testCatalog()

		Convey("Then Match uses the configured threshold", func() {
			roles, err := m.Match(context.Background(), cat, model.NewSkillSet("python", "django", "sql"))
			So(err, ShouldBeNil)
			So(roles, ShouldResemble, []string{"Backend Developer"}) // 2+2+1 = 5
		})
	})

	Convey("Given a non-positive threshold option", t, func() {
		m := match.New(match.WithThreshold(-2))

		Convey("Then the package default stays in effect", func() {
			cat := testCatalog()
			// python alone scores 2 everywhere; default threshold 3 excludes all
			roles, err := m.Match(context.Background(), cat, model.NewSkillSet("python"))
			So(err, ShouldBeNil)
			So(roles, ShouldBeEmpty)
		})
	})
}
