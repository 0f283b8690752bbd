package nasch

import (
	"fmt"
	"strconv"

	"nasch-ca/internal/core"
)

func (s *Simulator) Parameters() core.ParameterSnapshot {
	cfg := s.cfg
	groups := []core.ParameterGroup{
		{
			Name: "Road",
			Params: []core.Parameter{
				intParam("length", "Road length", cfg.RoadLength),
				intParam("vehicles", "Vehicles", cfg.Vehicles),
				stringParam("placement", "Placement", cfg.Placement),
				boolParam("random_speed", "Random start velocity", cfg.RandomStartVelocity),
			},
			Summary: fmt.Sprintf("density %.3f", cfg.Density()),
		},
		{
			Name: "Dynamics",
			Params: []core.Parameter{
				intParam("vmax", "Max velocity", cfg.MaxVelocity),
				floatParam("p", "Braking probability", cfg.BrakeProb),
				intParam("steps", "Steps", cfg.Steps),
				int64Param("seed", "Seed", cfg.Seed),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'g', -1, 64)}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(value)}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: value}
}
