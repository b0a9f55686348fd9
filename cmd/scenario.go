package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/satnet-rfp/satnet-rfp/sim/rfp"
)

// PredictedFailure is one predicted link failure of a scenario. The link goes
// down physically at T0 and comes back at RecoverAt when it is set.
type PredictedFailure struct {
	ID        int      `yaml:"id"`
	A         int      `yaml:"a"`
	B         int      `yaml:"b"`
	T0        float64  `yaml:"t0"`
	RecoverAt *float64 `yaml:"recover_at"`
}

// LinkChange is a physical link transition nobody predicted.
type LinkChange struct {
	At float64 `yaml:"at"`
	A  int     `yaml:"a"`
	B  int     `yaml:"b"`
	Up bool    `yaml:"up"`
}

// Scenario is the scenario file structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Scenario struct {
	Nodes             int                `yaml:"nodes"`
	Links             [][2]int           `yaml:"links"`
	Horizon           float64            `yaml:"horizon"`
	RegistrationTime  float64            `yaml:"registration_time"`
	PredictedFailures []PredictedFailure `yaml:"predicted_failures"`
	LinkChanges       []LinkChange       `yaml:"link_changes"`
	RFP               rfp.Config         `yaml:"rfp"`
}

// Demo scenario: 25 satellites on a chain, six predicted failures on the
// first links registered at t=2s, one unpredicted failure at the end of the
// chain as the standard OSPF baseline.
const (
	demoNodes            = 25
	demoChainLinks       = 8
	demoPredictedEvents  = 6
	demoFirstPrediction  = 10.0
	demoPredictionSpread = 8.0
	demoRegistrationTime = 2.0
	demoHorizon          = 100.0
	demoUnpredictedAt    = 70.0
)

// DefaultScenario returns the demo scenario.
func DefaultScenario() Scenario {
	sc := Scenario{
		Nodes:            demoNodes,
		Horizon:          demoHorizon,
		RegistrationTime: demoRegistrationTime,
		RFP:              rfp.DefaultConfig(),
	}
	for i := 0; i < demoChainLinks; i++ {
		sc.Links = append(sc.Links, [2]int{i, i + 1})
	}
	for k := 0; k < demoPredictedEvents; k++ {
		sc.PredictedFailures = append(sc.PredictedFailures, PredictedFailure{
			ID: k + 1, A: k, B: k + 1,
			T0: demoFirstPrediction + demoPredictionSpread*float64(k+1),
		})
	}
	sc.LinkChanges = []LinkChange{{At: demoUnpredictedAt, A: demoChainLinks - 1, B: demoChainLinks}}
	return sc
}

// LoadScenario reads a scenario file. Parameters missing from the rfp section
// keep their defaults.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario with strict field checking.
func ParseScenario(data []byte) (Scenario, error) {
	sc := Scenario{Horizon: demoHorizon, RFP: rfp.DefaultConfig()}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return Scenario{}, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks the scenario structure. Individual predicted failures are
// validated by the controller, which skips the invalid ones.
func (sc Scenario) Validate() error {
	if sc.Nodes < 2 {
		return fmt.Errorf("scenario needs at least 2 nodes, got %d", sc.Nodes)
	}
	if sc.Horizon <= 0 {
		return fmt.Errorf("scenario horizon must be positive, got %g", sc.Horizon)
	}
	if sc.RegistrationTime < 0 {
		return fmt.Errorf("registration_time must be non-negative, got %g", sc.RegistrationTime)
	}
	for _, l := range sc.Links {
		if l[0] < 0 || l[0] >= sc.Nodes || l[1] < 0 || l[1] >= sc.Nodes || l[0] == l[1] {
			return fmt.Errorf("invalid link %d-%d for %d nodes", l[0], l[1], sc.Nodes)
		}
	}
	return sc.RFP.Validate()
}
