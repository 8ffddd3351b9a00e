package driver

import (
	"encoding/json"
	"fmt"

	"evacsim/internal/model"
)

// IndividualsDescriptor is individuals descriptor: a list of
// IndividualSpec records, order defining index. The wire format accepts
// either a bare JSON array or `{"caracterizations": [...]}`; both
// normalize to the Caracterizations field.
type IndividualsDescriptor struct {
	Caracterizations []model.IndividualSpec
}

func (d *IndividualsDescriptor) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Caracterizations []model.IndividualSpec `json:"caracterizations"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Caracterizations != nil {
		d.Caracterizations = wrapped.Caracterizations
		return nil
	}

	var bare []model.IndividualSpec
	if err := json.Unmarshal(data, &bare); err != nil {
		return fmt.Errorf("driver: individuals descriptor must be a list or {\"caracterizations\": [...]}: %w", err)
	}
	d.Caracterizations = bare
	return nil
}

func (d IndividualsDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Caracterizations []model.IndividualSpec `json:"caracterizations"`
	}{d.Caracterizations})
}

// ScenarioSeeds is `scenario_seed: u64 | [u64]`, normalized to
// a slice regardless of which shape the caller sent.
type ScenarioSeeds []uint64

func (s *ScenarioSeeds) UnmarshalJSON(data []byte) error {
	var single uint64
	if err := json.Unmarshal(data, &single); err == nil {
		*s = ScenarioSeeds{single}
		return nil
	}
	var many []uint64
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("driver: scenario_seed must be a uint64 or an array of uint64: %w", err)
	}
	*s = many
	return nil
}

func (s ScenarioSeeds) MarshalJSON() ([]byte, error) {
	return json.Marshal([]uint64(s))
}

// ExperimentConfig is experiment configuration.
type ExperimentConfig struct {
	Experiment         string        `json:"experiment"`
	ScenarioSeed       ScenarioSeeds `json:"scenario_seed"`
	SimulationSeed     uint64        `json:"simulation_seed"`
	Draw               bool          `json:"draw"`
	UseThreeObjectives bool          `json:"use_three_objectives,omitempty"`
}

// Validate checks the required fields of an ExperimentConfig.
func (c ExperimentConfig) Validate() error {
	if c.Experiment == "" {
		return fmt.Errorf("driver: %w: experiment name is required", model.ErrInvalidConfig)
	}
	if len(c.ScenarioSeed) == 0 {
		return fmt.Errorf("driver: %w: scenario_seed is required", model.ErrInvalidConfig)
	}
	return nil
}

// NSGAConfig is NSGA configuration.
type NSGAConfig struct {
	PopulationSize     int     `json:"population_size"`
	Generations        int     `json:"generations"`
	CrossoverRate      float64 `json:"crossover_rate"`
	MutationRate       float64 `json:"mutation_rate"`
	UseThreeObjectives bool    `json:"use_three_objectives,omitempty"`
	Workers            int     `json:"workers,omitempty"`
}

// Validate checks NSGAConfig's rate bounds and positive sizes.
func (c NSGAConfig) Validate() error {
	if c.PopulationSize <= 0 {
		return fmt.Errorf("driver: %w: population_size must be positive", model.ErrInvalidConfig)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("driver: %w: generations must be positive", model.ErrInvalidConfig)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("driver: %w: crossover_rate must be in [0,1]", model.ErrInvalidConfig)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("driver: %w: mutation_rate must be in [0,1]", model.ErrInvalidConfig)
	}
	return nil
}
