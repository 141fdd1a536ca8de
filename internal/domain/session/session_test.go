package session_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/okian/compass/internal/domain/session"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistry(t *testing.T) {
	Convey("Given an in-memory session registry", t, func() {
		r := session.NewInMemoryRegistry()
		ctx := context.Background()

		Convey("When a question set is issued", func() {
			token := r.Issue(ctx, []string{"q1", "q2", "q3"})
			So(token, ShouldNotBeEmpty)
			So(r.Size(), ShouldEqual, 1)

			Convey("Then claiming returns the recorded ids", func() {
				ids, ok := r.Claim(ctx, token)
				So(ok, ShouldBeTrue)
				So(ids, ShouldResemble, []string{"q1", "q2", "q3"})
				So(r.Size(), ShouldEqual, 0)
			})

			Convey("Then a second claim fails", func() {
				_, _ = r.Claim(ctx, token)
				_, ok := r.Claim(ctx, token)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When claiming an unknown token", func() {
			_, ok := r.Claim(ctx, "nope")
			So(ok, ShouldBeFalse)
		})

		Convey("When two sessions are issued", func() {
			t1 := r.Issue(ctx, []string{"a"})
			t2 := r.Issue(ctx, []string{"b"})

			Convey("Then tokens are distinct and independent", func() {
				So(t1, ShouldNotEqual, t2)
				ids, ok := r.Claim(ctx, t1)
				So(ok, ShouldBeTrue)
				So(ids, ShouldResemble, []string{"a"})
				ids, ok = r.Claim(ctx, t2)
				So(ok, ShouldBeTrue)
				So(ids, ShouldResemble, []string{"b"})
			})
		})
	})
}

func TestRegistryEviction(t *testing.T) {
	Convey("Given a registry bounded to 3 sessions", t, func() {
		r := session.NewInMemoryRegistry(session.WithMaxSize(3))
		ctx := context.Background()

		tokens := make([]string, 0, 4)
		for i := 0; i < 4; i++ {
			tokens = append(tokens, r.Issue(ctx, []string{fmt.Sprintf("q%d", i)}))
		}

		Convey("Then the oldest session was evicted", func() {
			So(r.Size(), ShouldEqual, 3)
			_, ok := r.Claim(ctx, tokens[0])
			So(ok, ShouldBeFalse)
		})

		Convey("Then the newer sessions survive", func() {
			for _, token := range tokens[1:] {
				_, ok := r.Claim(ctx, token)
				So(ok, ShouldBeTrue)
			}
		})
	})
}
