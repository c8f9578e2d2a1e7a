package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/transport/core/model"
)

type ProblemDef struct {
	Origins      []string    `yaml:"origins,omitempty"`
	Destinations []string    `yaml:"destinations,omitempty"`
	Costs        [][]float64 `yaml:"costs"`
	Supply       []float64   `yaml:"supply"`
	Demand       []float64   `yaml:"demand"`
}

func (p ProblemDef) ToModel() model.Problem {
	return model.Problem{
		Origins:      p.Origins,
		Destinations: p.Destinations,
		Costs:        p.Costs,
		Supply:       p.Supply,
		Demand:       p.Demand,
	}
}

// Expected lists total costs keyed by method selector, or the validation
// reason the problem must be rejected with.
type Expected struct {
	Costs     map[string]float64 `yaml:"costs,omitempty"`
	Reason    string             `yaml:"reason,omitempty"`
	Truncated []string           `yaml:"truncated,omitempty"`
}

type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Reference   bool       `yaml:"reference,omitempty"`
	Problem     ProblemDef `yaml:"problem"`
	Expected    Expected   `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	for key := range sc.Expected.Costs {
		if _, err := model.ParseMethod(key); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return &sc, nil
}
