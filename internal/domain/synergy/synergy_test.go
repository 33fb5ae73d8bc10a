package synergy_test

import (
	"strings"
	"testing"

	synergy "github.com/okian/ascent/internal/domain/synergy"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtractCandidateSkills(t *testing.T) {
	Convey("Given a scorer", t, func() {
		scorer := synergy.New(synergy.WithSeed(1))

		Convey("When extracting from empty text", func() {
			vec := scorer.ExtractCandidateSkills("")

			Convey("Then the vector is all zeros with fixed length", func() {
				So(len(vec), ShouldEqual, 9)
				So(len(vec), ShouldEqual, synergy.FeatureCount())
				for _, v := range vec {
					So(v, ShouldEqual, 0)
				}
			})
		})

		Convey("When extracting from text with repeated catalog terms", func() {
			text := "Python developer. python and Machine Learning. Strong teamwork, teamwork, TEAMWORK."
			vec := scorer.ExtractCandidateSkills(text)

			Convey("Then counts are case-insensitive occurrence counts", func() {
				So(vec[0], ShouldEqual, 2) // Python
				So(vec[3], ShouldEqual, 1) // Machine Learning
				So(vec[8], ShouldEqual, 3) // teamwork
			})

			Convey("And unrelated terms contribute zero", func() {
				So(vec[2], ShouldEqual, 0) // Management
				So(vec[5], ShouldEqual, 0) // adaptability
			})
		})

		Convey("When extracting from arbitrary prose", func() {
			vec := scorer.ExtractCandidateSkills(strings.Repeat("nothing relevant here ", 50))

			Convey("Then the vector length is still fixed", func() {
				So(len(vec), ShouldEqual, 9)
			})
		})
	})
}

func TestGenerateTeamProfiles(t *testing.T) {
	Convey("Given a seeded scorer", t, func() {
		scorer := synergy.New(synergy.WithSeed(42))

		Convey("When generating profiles with a caller-supplied length", func() {
			profiles := scorer.GenerateTeamProfiles(9, 3)

			Convey("Then every profile matches the requested dimensions", func() {
				So(len(profiles), ShouldEqual, 3)
				for _, p := range profiles {
					So(len(p), ShouldEqual, 9)
					for _, v := range p {
						So(v, ShouldBeGreaterThanOrEqualTo, 0)
						So(v, ShouldBeLessThanOrEqualTo, 5)
					}
				}
			})
		})

		Convey("When the team count is not positive", func() {
			profiles := scorer.GenerateTeamProfiles(5, 0)

			Convey("Then the default of three teams applies", func() {
				So(len(profiles), ShouldEqual, 3)
				So(len(profiles[0]), ShouldEqual, 5)
			})
		})
	})
}

func TestScores(t *testing.T) {
	Convey("Given a scorer", t, func() {
		scorer := synergy.New(synergy.WithSeed(7))

		Convey("When a team vector length differs from the candidate", func() {
			candidate := make([]int, 9)
			teams := scorer.GenerateTeamProfiles(5, 3)

			scores, err := scorer.Scores(candidate, teams)

			Convey("Then the call is rejected without a result", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, synergy.ErrDimensionMismatch)
				So(scores, ShouldBeNil)
			})
		})

		Convey("When vectors are parallel", func() {
			candidate := []int{1, 2, 3}
			teams := [][]int{{2, 4, 6}}

			scores, err := scorer.Scores(candidate, teams)

			Convey("Then similarity is 1", func() {
				So(err, ShouldBeNil)
				So(scores[0], ShouldAlmostEqual, 1.0, 1e-12)
			})
		})

		Convey("When vectors are orthogonal", func() {
			scores, err := scorer.Scores([]int{1, 0}, [][]int{{0, 1}})

			Convey("Then similarity is 0", func() {
				So(err, ShouldBeNil)
				So(scores[0], ShouldEqual, 0)
			})
		})

		Convey("When the candidate vector is all zeros", func() {
			scores, err := scorer.Scores([]int{0, 0, 0}, [][]int{{1, 2, 3}})

			Convey("Then similarity is defined as 0", func() {
				So(err, ShouldBeNil)
				So(scores[0], ShouldEqual, 0)
			})
		})

		Convey("When the candidate is scaled by a positive integer", func() {
			candidate := []int{1, 0, 2, 3, 0, 1, 0, 0, 2}
			scaled := make([]int, len(candidate))
			for i, v := range candidate {
				scaled[i] = v * 4
			}
			teams := scorer.GenerateTeamProfiles(len(candidate), 3)

			base, err1 := scorer.Scores(candidate, teams)
			big, err2 := scorer.Scores(scaled, teams)

			Convey("Then all scores are unchanged", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				for i := range base {
					So(big[i], ShouldAlmostEqual, base[i], 1e-12)
				}
			})
		})

		Convey("When scores are computed against random teams", func() {
			candidate := []int{2, 1, 3, 4, 5, 1, 0, 2, 1}
			teams := scorer.GenerateTeamProfiles(len(candidate), 5)

			scores, err := scorer.Scores(candidate, teams)

			Convey("Then every score lies in [0, 1] for non-negative vectors", func() {
				So(err, ShouldBeNil)
				So(len(scores), ShouldEqual, 5)
				for _, s := range scores {
					So(s, ShouldBeGreaterThanOrEqualTo, 0)
					So(s, ShouldBeLessThanOrEqualTo, 1)
				}
			})
		})
	})
}

func TestAnalyze(t *testing.T) {
	Convey("Given a scorer", t, func() {
		scorer := synergy.New(synergy.WithSeed(3))

		// Vectors engineered to hit specific similarity values.
		Convey("When similarity is exactly 1", func() {
			messages, err := scorer.Analyze([]int{1, 1}, [][]int{{2, 2}})

			Convey("Then the excellent-fit message is produced", func() {
				So(err, ShouldBeNil)
				So(messages[0], ShouldEqual, "Team 1: Excellent fit. High synergy score of 1.00.")
			})
		})

		Convey("When similarity is exactly 0.8", func() {
			// cos([3,4],[1,0]) = 3/5 = 0.6; cos([4,3],[1,0]) = 0.8
			messages, err := scorer.Analyze([]int{4, 3}, [][]int{{1, 0}})

			Convey("Then the boundary falls to the good-fit tier", func() {
				So(err, ShouldBeNil)
				So(messages[0], ShouldStartWith, "Team 1: Good fit.")
			})
		})

		Convey("When similarity is between 0.5 and 0.8", func() {
			messages, err := scorer.Analyze([]int{3, 4}, [][]int{{1, 0}})

			Convey("Then the good-fit message is produced", func() {
				So(err, ShouldBeNil)
				So(messages[0], ShouldEqual, "Team 1: Good fit. Moderate synergy score of 0.60.")
			})
		})

		Convey("When similarity is exactly 0.5", func() {
			// cos([1,0],[1,sqrt(3)]) = 0.5; use integer approximation via [1,0] vs [5,~8.66]
			// Exact 0.5 with integers: cos([1,1,1,1],[2,0,0,0])? dot=2, |a|=2, |b|=2 -> 0.5.
			messages, err := scorer.Analyze([]int{1, 1, 1, 1}, [][]int{{2, 0, 0, 0}})

			Convey("Then the boundary falls to the low-fit tier", func() {
				So(err, ShouldBeNil)
				So(messages[0], ShouldEqual, "Team 1: Low synergy score of 0.50. Training or adjustments may be needed.")
			})
		})

		Convey("When similarity is 0", func() {
			messages, err := scorer.Analyze([]int{1, 0}, [][]int{{0, 1}})

			Convey("Then the low-fit message recommends training", func() {
				So(err, ShouldBeNil)
				So(messages[0], ShouldContainSubstring, "Training or adjustments may be needed")
			})
		})

		Convey("When dimensions mismatch", func() {
			_, err := scorer.Analyze([]int{1, 2, 3}, [][]int{{1, 2}})

			Convey("Then the error propagates", func() {
				So(err, ShouldWrap, synergy.ErrDimensionMismatch)
			})
		})

		Convey("When several teams are analyzed", func() {
			candidate := scorer.ExtractCandidateSkills("Python Python teamwork communication leadership")
			teams := scorer.GenerateTeamProfiles(len(candidate), 3)

			messages, err := scorer.Analyze(candidate, teams)

			Convey("Then one message per team is returned in order", func() {
				So(err, ShouldBeNil)
				So(len(messages), ShouldEqual, 3)
				So(messages[0], ShouldStartWith, "Team 1:")
				So(messages[1], ShouldStartWith, "Team 2:")
				So(messages[2], ShouldStartWith, "Team 3:")
			})
		})
	})
}

func TestQuickTier(t *testing.T) {
	Convey("Given the presentation tier thresholds", t, func() {
		Convey("Then 0.71 is High", func() {
			So(synergy.QuickTier(0.71), ShouldEqual, "High")
		})
		Convey("Then exactly 0.7 is Moderate", func() {
			So(synergy.QuickTier(0.7), ShouldEqual, "Moderate")
		})
		Convey("Then 0.51 is Moderate", func() {
			So(synergy.QuickTier(0.51), ShouldEqual, "Moderate")
		})
		Convey("Then exactly 0.5 is Low", func() {
			So(synergy.QuickTier(0.5), ShouldEqual, "Low")
		})
		Convey("Then 0 is Low", func() {
			So(synergy.QuickTier(0), ShouldEqual, "Low")
		})
	})
}
