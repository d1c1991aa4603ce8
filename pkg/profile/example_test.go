package profile_test

import (
	"fmt"
	"time"

	"github.com/matzehuels/ghprofile/pkg/profile"
)

func ExampleCountLanguages() {
	usage := profile.CountLanguages([][]string{
		{"Python"},
		{"Python", "Go"},
	})
	fmt.Println(usage["Python"], usage["Go"])
	// Output:
	// 2 1
}

func ExampleCommitStats_GoodMessageRatio() {
	ratio, err := profile.CommitStats{Authored: 4, Good: 3}.GoodMessageRatio()
	fmt.Println(ratio, err)

	_, err = profile.CommitStats{}.GoodMessageRatio()
	fmt.Println(err)
	// Output:
	// 0.75 <nil>
	// UNDEFINED_RATIO: no authored commits
}

func ExampleAccountAge() {
	registered := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)

	fmt.Println(*profile.AccountAge(&registered, now))
	fmt.Println(profile.AccountAge(nil, now))
	// Output:
	// 240h0m0s
	// <nil>
}
