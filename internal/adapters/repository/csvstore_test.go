package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/compass/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	rolesCSV = `career_name,category,required_skills
Backend Developer,Engineering,"python, django, sql"
Data Analyst,Data,"sql, excel"
`
	affinityCSV = `career_name,Python,Django,SQL,Excel
Backend Developer,2,2,1,
Data Analyst,1,,2,2
`
	questionsCSV = `id,question
q1,I enjoy solving logical puzzles.
q2,I like working with data.
`
)

func writeData(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func validData(t *testing.T) string {
	return writeData(t, map[string]string{
		"job_roles.csv":     rolesCSV,
		"skills_matrix.csv": affinityCSV,
		"questions.csv":     questionsCSV,
	})
}

func TestCSVStoreReload(t *testing.T) {
	Convey("Given a store over a valid data directory", t, func() {
		store := repository.NewCSVStore(validData(t))
		ctx := context.Background()

		Convey("Before any reload", func() {
			So(store.Available(), ShouldBeFalse)
			_, err := store.Snapshot(ctx)
			So(errors.Is(err, repository.ErrUnavailable), ShouldBeTrue)
		})

		Convey("After a successful reload", func() {
			So(store.Reload(ctx), ShouldBeNil)
			So(store.Available(), ShouldBeTrue)

			cat, err := store.Snapshot(ctx)
			So(err, ShouldBeNil)

			Convey("Then roles are loaded in table order", func() {
				roles := cat.ListRoles("")
				So(roles, ShouldHaveLength, 2)
				So(roles[0].Name, ShouldEqual, "Backend Developer")
				So(roles[0].RequiredSkills, ShouldResemble, []string{"python", "django", "sql"})
			})

			Convey("Then affinity labels are normalized to lower case", func() {
				So(cat.Affinity("Backend Developer", "python"), ShouldEqual, 2)
				So(cat.Affinity("Data Analyst", "sql"), ShouldEqual, 2)
			})

			Convey("Then blank affinity cells weigh zero", func() {
				So(cat.Affinity("Backend Developer", "excel"), ShouldEqual, 0)
				So(cat.Affinity("Data Analyst", "django"), ShouldEqual, 0)
			})

			Convey("Then the question bank is loaded", func() {
				So(cat.QuestionCount(), ShouldEqual, 2)
				So(cat.Questions()[0].ID, ShouldEqual, "q1")
			})
		})
	})
}

func TestCSVStoreFailures(t *testing.T) {
	ctx := context.Background()

	Convey("Given a data directory missing a table", t, func() {
		dir := writeData(t, map[string]string{
			"job_roles.csv": rolesCSV,
			"questions.csv": questionsCSV,
		})
		store := repository.NewCSVStore(dir)

		Convey("Then reload fails and the store stays unavailable", func() {
			err := store.Reload(ctx)
			So(errors.Is(err, repository.ErrUnavailable), ShouldBeTrue)
			So(store.Available(), ShouldBeFalse)
		})
	})

	Convey("Given a roles table missing a required column", t, func() {
		dir := writeData(t, map[string]string{
			"job_roles.csv":     "career_name,required_skills\nBackend Developer,python\n",
			"skills_matrix.csv": affinityCSV,
			"questions.csv":     questionsCSV,
		})
		store := repository.NewCSVStore(dir)

		Convey("Then reload reports a malformed table", func() {
			err := store.Reload(ctx)
			So(errors.Is(err, repository.ErrMalformedTable), ShouldBeTrue)
		})
	})

	Convey("Given an affinity matrix with a negative weight", t, func() {
		dir := writeData(t, map[string]string{
			"job_roles.csv":     rolesCSV,
			"skills_matrix.csv": "career_name,python\nBackend Developer,-1\n",
			"questions.csv":     questionsCSV,
		})
		store := repository.NewCSVStore(dir)

		So(errors.Is(store.Reload(ctx), repository.ErrMalformedTable), ShouldBeTrue)
	})

	Convey("Given a previously loaded store and a broken reload", t, func() {
		dir := validData(t)
		store := repository.NewCSVStore(dir)
		So(store.Reload(ctx), ShouldBeNil)

		So(os.WriteFile(filepath.Join(dir, "skills_matrix.csv"), []byte("career_name,python\nBackend Developer,oops\n"), 0o600), ShouldBeNil)

		Convey("Then the failed reload keeps the previous snapshot serving", func() {
			So(store.Reload(ctx), ShouldNotBeNil)
			So(store.Available(), ShouldBeTrue)
			cat, err := store.Snapshot(ctx)
			So(err, ShouldBeNil)
			So(cat.Affinity("Backend Developer", "python"), ShouldEqual, 2)
		})
	})

	Convey("Given duplicate role names", t, func() {
		dir := writeData(t, map[string]string{
			"job_roles.csv":     "career_name,category,required_skills\nDev,Eng,python\nDev,Eng,sql\n",
			"skills_matrix.csv": affinityCSV,
			"questions.csv":     questionsCSV,
		})
		store := repository.NewCSVStore(dir)

		So(errors.Is(store.Reload(ctx), repository.ErrMalformedTable), ShouldBeTrue)
	})
}

func TestCSVStoreOptions(t *testing.T) {
	Convey("Given overridden table file names", t, func() {
		dir := writeData(t, map[string]string{
			"roles.csv":  rolesCSV,
			"matrix.csv": affinityCSV,
			"bank.csv":   questionsCSV,
		})
		store := repository.NewCSVStore(dir,
			repository.WithRolesFile("roles.csv"),
			repository.WithAffinityFile("matrix.csv"),
			repository.WithQuestionsFile("bank.csv"),
		)

		Convey("Then reload uses the configured names", func() {
			So(store.Reload(context.Background()), ShouldBeNil)
			So(store.Available(), ShouldBeTrue)
		})
	})
}
