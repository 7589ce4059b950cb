package regexvm

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v2"
	"gotest.tools/v3/assert"
)

// scenario is one fixture from testdata/scenarios.yaml. Mode selects how the
// pattern runs: "match" for a full-subject match, "longest" for search in
// longest mode, anything else for first-match search. Captures,
// when present, lists the expected text of each group with null for groups
// that did not participate.
type scenario struct {
	Name     string    `yaml:"name"`
	Pattern  string    `yaml:"pattern"`
	Subject  string    `yaml:"subject"`
	Mode     string    `yaml:"mode"`
	Match    bool      `yaml:"match"`
	Captures []*string `yaml:"captures"`
}

func TestScenarios(t *testing.T) {
	raw, err := os.ReadFile("testdata/scenarios.yaml")
	assert.NilError(t, err)

	var scenarios []scenario
	assert.NilError(t, yaml.Unmarshal(raw, &scenarios))
	assert.Assert(t, len(scenarios) > 0)

	for _, sc := range scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			re, err := Compile(sc.Pattern)
			assert.NilError(t, err)

			var slots []int
			switch sc.Mode {
			case "match":
				slots = re.Exec([]byte(sc.Subject), true, false)
			case "longest":
				slots = re.FindLongestSubmatchIndex([]byte(sc.Subject))
			default:
				slots = re.FindSubmatchIndex([]byte(sc.Subject))
			}

			assert.Equal(t, slots != nil, sc.Match, "match outcome")
			if slots == nil || sc.Captures == nil {
				return
			}

			got := make([]*string, 0, len(slots)/2)
			for i := 0; i < len(slots); i += 2 {
				if slots[i] < 0 {
					got = append(got, nil)
					continue
				}
				text := sc.Subject[slots[i]:slots[i+1]]
				got = append(got, &text)
			}
			if diff := cmp.Diff(sc.Captures, got); diff != "" {
				t.Errorf("captures mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
